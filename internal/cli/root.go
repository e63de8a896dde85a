package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mcoot/whoosh/internal/factory"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// A missing .env is fine
	_ = godotenv.Load()
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "whoosh",
		Short: "CLI client for the Whoosh game API",
		Long: `whoosh is a command line client for the Whoosh game backend.

It manages the session token pair, refreshes the access token when the
server rejects it, and drives the same login, registration, guest and
dashboard flows as the web client.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd, cfg.Verbose)

			var err error
			app, err = factory.New(cfg.FactoryConfig(logger))
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: WHOOSH_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.APIBase, "api-base", cfg.APIBase, "API path prefix (env: WHOOSH_API_BASE)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenStore, "token-store", cfg.TokenStore, "Token store: memory, file, redis (env: WHOOSH_TOKEN_STORE)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: WHOOSH_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis token store (env: WHOOSH_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Profile, "profile", cfg.Profile, "Session profile name (env: WHOOSH_PROFILE)")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout (env: WHOOSH_TIMEOUT)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json, html")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newGuestCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newQueueCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newPageCmd())
	rootCmd.AddCommand(newShellCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		newOutput(rootCmd).PrintError(err)
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
