package cmd

import (
	"context"
	"fmt"
	"time"

	"event-platform/internal/app"
	"event-platform/internal/database"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative maintenance tasks",
}

// 第一個管理員只能透過 CLI 產生
var promoteCmd = &cobra.Command{
	Use:   "promote <username>",
	Short: "Grant admin privileges to an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := database.InitDatabase(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		user, err := app.NewServices(cfg, pool, nil).Users.Promote(ctx, args[0])
		if err != nil {
			return fmt.Errorf("promote %q: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %s (id=%d) is now an admin\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	adminCmd.AddCommand(promoteCmd)
}
