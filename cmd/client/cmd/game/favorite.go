package game

import (
	"fmt"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
)

var FavoriteCmd = &cobra.Command{
	Use:   "favorite [id]",
	Short: "Toggle the favorite mark of a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := ui.AppFrom(cmd)
		if err != nil {
			return err
		}
		id, err := ui.ParseID(args[0])
		if err != nil {
			return err
		}

		g, err := app.Session().ToggleFavorite(id).Wait(cmd.Context())
		if err != nil {
			return fmt.Errorf("toggle favorite: %w", err)
		}

		if g.IsFavorite {
			ui.Success("'%s' added to favorites\n", g.Title)
		} else {
			ui.Success("'%s' removed from favorites\n", g.Title)
		}
		return nil
	},
}
