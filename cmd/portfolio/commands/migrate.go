package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trogers1052/portfolio-analytics/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Apply every pending migration from DB_MIGRATIONS_PATH (default
db/migrations) to the configured PostgreSQL database.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log := loadConfig()

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(cfg.Database.MigrationsPath); err != nil {
		return err
	}

	log.Info().Str("path", cfg.Database.MigrationsPath).Msg("Migrations applied")
	fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
	return nil
}
