package game

import (
	"fmt"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
)

var edited struct {
	title       string
	genre       string
	platform    string
	year        int
	imageURL    string
	description string
	favorite    bool
}

var EditCmd = &cobra.Command{
	Use:     "edit [id]",
	Short:   "Change the fields of a game",
	Long:    `Only the fields passed as flags are changed.`,
	Example: `  gamelib game edit 3 --year 2018 --platform Switch`,
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

		g, err := app.Session().GetGameByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get game: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("title") {
			g.Title = edited.title
		}
		if flags.Changed("genre") {
			g.Genre = edited.genre
		}
		if flags.Changed("platform") {
			g.Platform = edited.platform
		}
		if flags.Changed("year") {
			g.ReleaseYear = edited.year
		}
		if flags.Changed("image") {
			g.ImageURL = optional(edited.imageURL)
		}
		if flags.Changed("description") {
			g.Description = optional(edited.description)
		}
		if flags.Changed("favorite") {
			g.IsFavorite = edited.favorite
		}

		if _, err := app.Session().UpdateGame(*g).Wait(cmd.Context()); err != nil {
			return fmt.Errorf("update game: %w", err)
		}

		ui.Success("Game %d updated\n", id)
		return nil
	},
}

// optional maps an empty flag value to a cleared field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func init() {
	EditCmd.Flags().StringVarP(&edited.title, "title", "t", "", "game title")
	EditCmd.Flags().StringVarP(&edited.genre, "genre", "g", "", "genre")
	EditCmd.Flags().StringVarP(&edited.platform, "platform", "p", "", "platform")
	EditCmd.Flags().IntVarP(&edited.year, "year", "y", 0, "release year")
	EditCmd.Flags().StringVar(&edited.imageURL, "image", "", "cover image URL, empty to clear")
	EditCmd.Flags().StringVarP(&edited.description, "description", "d", "", "description, empty to clear")
	EditCmd.Flags().BoolVarP(&edited.favorite, "favorite", "f", false, "favorite flag")
}
