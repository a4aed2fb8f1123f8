package review

import (
	"fmt"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
	"gamelib/internal/domain/game"
)

var (
	rating  float64
	comment string
)

var AddCmd = &cobra.Command{
	Use:     "add [game id]",
	Short:   "Review a game",
	Example: `  gamelib review add 3 --rating 4.5 --comment "Tight controls"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := ui.AppFrom(cmd)
		if err != nil {
			return err
		}
		gameID, err := ui.ParseID(args[0])
		if err != nil {
			return err
		}

		id, err := app.Session().InsertReview(game.Review{
			GameID:  gameID,
			Rating:  rating,
			Comment: comment,
		}).Wait(cmd.Context())
		if err != nil {
			return fmt.Errorf("add review: %w", err)
		}

		ui.Success("Review %d added\n", id)
		return nil
	},
}

func init() {
	AddCmd.Flags().Float64VarP(&rating, "rating", "r", 0, fmt.Sprintf("rating from %d to %d", game.MinRating, game.MaxRating))
	AddCmd.Flags().StringVarP(&comment, "comment", "c", "", "comment")
	_ = AddCmd.MarkFlagRequired("rating")
}
