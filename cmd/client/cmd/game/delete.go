package game

import (
	"fmt"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
)

var (
	withReviews bool
	assumeYes   bool
)

var DeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a game",
	Long: `Deletes a game from the library. Its reviews are kept unless
--with-reviews is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := ui.AppFrom(cmd)
		if err != nil {
			return err
		}
		id, err := ui.ParseID(args[0])
		if err != nil {
			return err
		}

		g, err := app.Session().GetGameByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get game: %w", err)
		}

		if !assumeYes {
			ok, err := ui.Confirm(fmt.Sprintf("Delete '%s'?", g.Title))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled")
				return nil
			}
		}

		if withReviews {
			n, err := app.Session().DeleteGameWithReviews(id).Wait(cmd.Context())
			if err != nil {
				return fmt.Errorf("delete game: %w", err)
			}
			ui.Success("Game '%s' deleted with %d review(s)\n", g.Title, n)
			return nil
		}

		if _, err := app.Session().DeleteGame(id).Wait(cmd.Context()); err != nil {
			return fmt.Errorf("delete game: %w", err)
		}
		ui.Success("Game '%s' deleted\n", g.Title)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVar(&withReviews, "with-reviews", false, "also delete the game's reviews")
	DeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
}
