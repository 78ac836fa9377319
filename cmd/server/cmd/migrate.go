package cmd

import (
	"fmt"

	"breachvault/internal/app/server/config"
	"breachvault/internal/infrastructure/migration"
	"breachvault/internal/utils/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	if err := migration.NewMigration(cfg, migration.DefaultEngine).Up(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	log.Info("migrations applied")
	return nil
}
