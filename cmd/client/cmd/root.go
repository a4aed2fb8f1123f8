package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"gamelib/cmd/client/cmd/ui"
	"gamelib/internal/app/client"
	"gamelib/internal/app/client/config"
	shared "gamelib/internal/config"
	"gamelib/internal/utils/logger"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
)

var (
	v   = viper.New()
	log *slog.Logger
	app *client.App
)

var rootCmd = &cobra.Command{
	Use:   "gamelib",
	Short: "Gamelib - a personal game library",
	Long: `Gamelib keeps a local library of games and your reviews of them.

Games can be typed in by hand or imported from a RAWG-compatible catalog
(the public RAWG API or a self-hosted gamelib catalog server).`,
	PersistentPreRunE: setupApp,
	PersistentPostRun: shutdownApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		shutdownApp(nil, nil)
		ui.Failure(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Logs go to a file when one is configured so they never mix with command output.
	opts := []logger.Option{logger.WithOutput(os.Stderr)}
	if cfg.LogFile != "" {
		opts = append(opts, logger.WithFile(cfg.LogFile, logMaxSizeMB, logMaxBackups))
	}
	if v.GetBool("debug") {
		cfg.Env = shared.EnvDev
	}
	log = logger.New(cfg.Env, opts...)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("start client: %w", err)
	}
	if !app.Persistent() {
		fmt.Fprintln(os.Stderr, "Warning: the game database could not be opened, changes will not be saved.")
	}

	cmd.SetContext(client.WithApp(cmd.Context(), app))
	return nil
}

func shutdownApp(_ *cobra.Command, _ []string) {
	if app != nil {
		app.Shutdown()
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config-dir", "", "directory holding config.yaml and the game database")
	flags.String("data", "", "path of the game database")
	flags.String("catalog", "", "base URL of the RAWG-compatible catalog")
	flags.String("api-key", "", "catalog API key")
	flags.String("log-file", "", "write logs to this file")
	flags.Bool("debug", false, "verbose logging")

	_ = v.BindPFlag("config_dir", flags.Lookup("config-dir"))
	_ = v.BindPFlag("data_path", flags.Lookup("data"))
	_ = v.BindPFlag("catalog_base_url", flags.Lookup("catalog"))
	_ = v.BindPFlag("catalog_api_key", flags.Lookup("api-key"))
	_ = v.BindPFlag("log_file", flags.Lookup("log-file"))
	_ = v.BindPFlag("debug", flags.Lookup("debug"))
}
