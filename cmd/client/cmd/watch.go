package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gamelib/cmd/client/cmd/ui"
)

var watchFavorites bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the library every time it changes",
	Long: `Prints the game list and prints it again whenever it changes, including
changes made by other gamelib processes. Stops on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := ui.AppFrom(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			app.Run(ctx)
			cancel()
		}()

		games := app.Session().Games()
		if watchFavorites {
			games = app.Session().Favorites()
		}
		sub := games.Subscribe()
		defer sub.Unsubscribe()

		for {
			select {
			case list, ok := <-sub.C():
				if !ok {
					return nil
				}
				fmt.Print("\033[H\033[2J")
				ui.Games(os.Stdout, list)
			case <-ctx.Done():
				<-done
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchFavorites, "favorites", false, "only favorites")
}
