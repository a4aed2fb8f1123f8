package search

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
	"gamelib/internal/app/client"
	"gamelib/internal/domain/catalog"
)

var (
	importID     int64
	markFavorite bool
	assumeYes    bool
	searchJSON   bool
)

var SearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the remote catalog",
	Long: `Searches the remote catalog by name. Without a query the popular games
are listed.

With --import the game with that catalog ID is previewed as it would be
stored and, once confirmed, added to the library.`,
	Example: `  gamelib search zelda
  gamelib search "hollow knight" --import 9767 --favorite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := ui.AppFrom(cmd)
		if err != nil {
			return err
		}
		session := app.Session()

		query := strings.Join(args, " ")
		results, err := session.SearchRemote(query).Wait(cmd.Context())
		if err != nil {
			if status := session.Status().Value(); status.Err != "" {
				return errors.New(status.Err)
			}
			return err
		}

		if importID == 0 {
			if searchJSON {
				return ui.JSON(os.Stdout, results)
			}
			ui.Results(os.Stdout, results)
			return nil
		}

		return importGame(cmd, app, results)
	},
}

func importGame(cmd *cobra.Command, app *client.App, results []catalog.Summary) error {
	summary, err := pick(cmd, app, results)
	if err != nil {
		return err
	}

	g := app.Session().ImportRemoteSummary(*summary, markFavorite)
	fmt.Println("The following game will be added:")
	fmt.Println()
	ui.Game(os.Stdout, g)
	fmt.Println()

	if !assumeYes {
		ok, err := ui.Confirm("Add it to the library?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled")
			return nil
		}
	}

	id, err := app.Session().CommitImport(g).Wait(cmd.Context())
	if err != nil {
		return fmt.Errorf("import game: %w", err)
	}
	ui.Success("Game '%s' added with ID %d\n", g.Title, id)
	return nil
}

// pick prefers the full catalog entry, which carries the description, and
// falls back to the search result when the details cannot be fetched.
func pick(cmd *cobra.Command, app *client.App, results []catalog.Summary) (*catalog.Summary, error) {
	details, detailsErr := app.RemoteDetails(cmd.Context(), importID)
	if detailsErr == nil {
		return details, nil
	}
	for i := range results {
		if results[i].ID == importID {
			return &results[i], nil
		}
	}
	return nil, fmt.Errorf("catalog game %d: %w", importID, detailsErr)
}

func init() {
	SearchCmd.Flags().Int64Var(&importID, "import", 0, "catalog ID of the game to import")
	SearchCmd.Flags().BoolVarP(&markFavorite, "favorite", "f", false, "mark the imported game as favorite")
	SearchCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "import without asking for confirmation")
	SearchCmd.Flags().BoolVar(&searchJSON, "json", false, "print JSON")
}
