package review

import (
	"fmt"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
	"gamelib/internal/domain/game"
)

var edited struct {
	rating  float64
	comment string
}

var EditCmd = &cobra.Command{
	Use:   "edit [game id] [review id]",
	Short: "Change the rating or comment of a review",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := ui.AppFrom(cmd)
		if err != nil {
			return err
		}
		gameID, err := ui.ParseID(args[0])
		if err != nil {
			return err
		}
		reviewID, err := ui.ParseID(args[1])
		if err != nil {
			return err
		}

		reviews, err := app.Session().GetReviewsByGame(gameID)
		if err != nil {
			return fmt.Errorf("get reviews: %w", err)
		}
		r, ok := find(reviews.Value(), reviewID)
		if !ok {
			return fmt.Errorf("game %d has no review %d", gameID, reviewID)
		}

		if cmd.Flags().Changed("rating") {
			r.Rating = edited.rating
		}
		if cmd.Flags().Changed("comment") {
			r.Comment = edited.comment
		}

		if _, err := app.Session().UpdateReview(r).Wait(cmd.Context()); err != nil {
			return fmt.Errorf("update review: %w", err)
		}

		ui.Success("Review %d updated\n", reviewID)
		return nil
	},
}

func find(reviews []game.Review, id int64) (game.Review, bool) {
	for _, r := range reviews {
		if r.ID == id {
			return r, true
		}
	}
	return game.Review{}, false
}

func init() {
	EditCmd.Flags().Float64VarP(&edited.rating, "rating", "r", 0, "new rating")
	EditCmd.Flags().StringVarP(&edited.comment, "comment", "c", "", "new comment")
}
