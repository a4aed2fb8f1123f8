package game

import (
	"os"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
)

var (
	favoritesOnly bool
	listJSON      bool
)

var ListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the games in the library",
	Long:    `Lists the stored games ordered by title. Use --favorites to show only favorites.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := ui.AppFrom(cmd)
		if err != nil {
			return err
		}

		games := app.Session().Games().Value()
		if favoritesOnly {
			games = app.Session().Favorites().Value()
		}

		if listJSON {
			return ui.JSON(os.Stdout, games)
		}
		ui.Games(os.Stdout, games)
		return nil
	},
}

func init() {
	ListCmd.Flags().BoolVar(&favoritesOnly, "favorites", false, "only favorites")
	ListCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")
}
