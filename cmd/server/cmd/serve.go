package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"event-platform/internal/app"

	"github.com/spf13/cobra"
)

var runMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and the activity worker",
	Long: `Start the HTTP server and the activity worker.

Examples:
  # Start with configuration from env vars
  server serve

  # Apply pending migrations first
  server serve --migrate

  # Use a config file
  server serve --config /etc/event-platform/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&runMigrations, "migrate", false, "apply pending migrations before starting")
}

func runServer(parent context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, app.Options{Migrate: runMigrations})
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}
