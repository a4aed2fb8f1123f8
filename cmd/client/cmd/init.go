package cmd

import (
	"gamelib/cmd/client/cmd/game"
	"gamelib/cmd/client/cmd/review"
	"gamelib/cmd/client/cmd/search"
)

func init() {
	rootCmd.AddCommand(game.GameCmd)
	game.GameCmd.AddCommand(game.AddCmd)
	game.GameCmd.AddCommand(game.ListCmd)
	game.GameCmd.AddCommand(game.ShowCmd)
	game.GameCmd.AddCommand(game.EditCmd)
	game.GameCmd.AddCommand(game.DeleteCmd)
	game.GameCmd.AddCommand(game.FavoriteCmd)

	rootCmd.AddCommand(review.ReviewCmd)
	review.ReviewCmd.AddCommand(review.AddCmd)
	review.ReviewCmd.AddCommand(review.ListCmd)
	review.ReviewCmd.AddCommand(review.EditCmd)
	review.ReviewCmd.AddCommand(review.DeleteCmd)

	rootCmd.AddCommand(search.SearchCmd)
	rootCmd.AddCommand(watchCmd)
}
