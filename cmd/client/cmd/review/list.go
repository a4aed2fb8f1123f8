package review

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
)

var listJSON bool

var ListCmd = &cobra.Command{
	Use:     "list [game id]",
	Aliases: []string{"ls"},
	Short:   "List the reviews of a game, newest first",
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

		reviews, err := app.Session().GetReviewsByGame(gameID)
		if err != nil {
			return fmt.Errorf("get reviews: %w", err)
		}

		if listJSON {
			return ui.JSON(os.Stdout, reviews.Value())
		}
		ui.Reviews(os.Stdout, reviews.Value())
		return nil
	},
}

func init() {
	ListCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")
}
