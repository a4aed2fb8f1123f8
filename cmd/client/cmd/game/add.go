package game

import (
	"fmt"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
	"gamelib/internal/domain/game"
)

var (
	title       string
	genre       string
	platform    string
	year        int
	imageURL    string
	description string
	favorite    bool
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a game by hand",
	Example: `  gamelib game add --title "Hollow Knight" --genre Metroidvania --platform PC --year 2017
  gamelib game add -t "Celeste" --favorite`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := ui.AppFrom(cmd)
		if err != nil {
			return err
		}

		g := game.Game{
			Title:       title,
			Genre:       genre,
			Platform:    platform,
			ReleaseYear: year,
			IsFavorite:  favorite,
		}
		if imageURL != "" {
			g.ImageURL = &imageURL
		}
		if description != "" {
			g.Description = &description
		}

		id, err := app.Session().InsertGame(g).Wait(cmd.Context())
		if err != nil {
			return fmt.Errorf("add game: %w", err)
		}

		ui.Success("Game '%s' added with ID %d\n", g.Title, id)
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&title, "title", "t", "", "game title")
	AddCmd.Flags().StringVarP(&genre, "genre", "g", game.FallbackGenre, "genre")
	AddCmd.Flags().StringVarP(&platform, "platform", "p", game.FallbackPlatform, "platform")
	AddCmd.Flags().IntVarP(&year, "year", "y", 0, "release year")
	AddCmd.Flags().StringVar(&imageURL, "image", "", "cover image URL")
	AddCmd.Flags().StringVarP(&description, "description", "d", "", "description")
	AddCmd.Flags().BoolVarP(&favorite, "favorite", "f", false, "mark as favorite")
	_ = AddCmd.MarkFlagRequired("title")
}
