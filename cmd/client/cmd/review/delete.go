package review

import (
	"fmt"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
)

var DeleteCmd = &cobra.Command{
	Use:     "delete [review id]",
	Aliases: []string{"rm"},
	Short:   "Delete a review",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := ui.AppFrom(cmd)
		if err != nil {
			return err
		}
		id, err := ui.ParseID(args[0])
		if err != nil {
			return err
		}

		if _, err := app.Session().DeleteReview(id).Wait(cmd.Context()); err != nil {
			return fmt.Errorf("delete review: %w", err)
		}

		ui.Success("Review %d deleted\n", id)
		return nil
	},
}
