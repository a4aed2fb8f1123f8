package game

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
	"gamelib/internal/domain/game"
)

var showJSON bool

var ShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one game and its reviews",
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

		g, err := app.Session().GetGameByID(cmd.Context(), id)
		if err != nil {
			if errors.Is(err, game.ErrNotFound) {
				return fmt.Errorf("game %d not found", id)
			}
			return fmt.Errorf("get game: %w", err)
		}
		reviews, err := app.Session().GetReviewsByGame(id)
		if err != nil {
			return fmt.Errorf("get reviews: %w", err)
		}

		if showJSON {
			return ui.JSON(os.Stdout, struct {
				*game.Game
				Reviews []game.Review `json:"reviews"`
			}{g, reviews.Value()})
		}

		ui.Game(os.Stdout, *g)
		fmt.Println()
		ui.Reviews(os.Stdout, reviews.Value())
		return nil
	},
}

func init() {
	ShowCmd.Flags().BoolVar(&showJSON, "json", false, "print JSON")
}
