package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eigotube/immersion-api/internal/database"
	"github.com/eigotube/immersion-api/internal/models"
	"github.com/eigotube/immersion-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage database migrations for the Immersion API.

The schema is managed with GORM auto-migration, which creates missing
tables, columns, and indexes without touching existing data.

Available subcommands:
  up      - Apply all pending migrations
  status  - Show current migration status`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Long: `Apply all pending database migrations.

This command brings the schema up to date with the current models,
creating any missing tables, columns, and indexes.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Display the current status of database migrations.

This command shows which model tables exist in the configured database
and which would be created by a migration.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

// migrationModels lists every model the schema carries, in dependency order
func migrationModels() []any {
	return []any{
		&models.Channel{},
		&models.Video{},
		&models.StudyCard{},
		&models.StudySession{},
	}
}

func openDatabase() (*database.DB, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("no database path configured")
	}
	return database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if dryRun {
		fmt.Println("Dry run mode - no changes will be made")
		for _, model := range migrationModels() {
			if !db.DB.Migrator().HasTable(model) {
				fmt.Printf("Would create table for %T\n", model)
			}
		}
		return nil
	}

	if err := db.AutoMigrate(migrationModels()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println("Migrations applied")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println("Database Migration Status")
	fmt.Println(strings.Repeat("=", 50))

	for _, model := range migrationModels() {
		status := "pending"
		if db.DB.Migrator().HasTable(model) {
			status = "applied"
		}
		fmt.Printf("%-40T %s\n", model, status)
	}

	return nil
}
