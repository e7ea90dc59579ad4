package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nestwatch/nestwatch-api/internal/database"
	"github.com/nestwatch/nestwatch-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the archive database schema for the NestWatch Annotation API.

The archive store keeps synced annotation records and assignment rows in
a local SQLite database. Migrations are applied automatically on serve
when the archive backend is configured; this command runs them on demand.

Available subcommands:
  up      - Apply all pending migrations
  down    - Rollback migrations (not supported)
  status  - Show current schema status`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Long: `Apply all pending database migrations.

This creates or updates the archived_annotations and assignment_records
tables so the archive store backend can be used.`,
	RunE: runMigrateUp,
}

// migrateDownCmd rolls back migrations
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback migrations (not supported)",
	Long: `Rollback database migrations.

The archive schema is managed with additive auto-migrations, so rollback
is not supported. Delete the database file to start over.`,
	RunE: runMigrateDown,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	Long: `Display the current status of the archive database schema.

This shows which of the expected tables exist in the configured
database file.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if err := config.Init(); err != nil {
		return err
	}

	if dryRun {
		fmt.Println("Dry run mode - no changes will be made")
		fmt.Printf("Would migrate database at %s\n", config.GetString("database.path"))
		fmt.Println("Tables: archived_annotations, assignment_records")
		return nil
	}

	db, err := database.InitializeWithMigrations()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer func() { _ = db.Close() }()

	fmt.Printf("Migrations applied to %s\n", config.GetString("database.path"))
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	fmt.Println("Rollback is not supported: the archive schema uses additive auto-migrations.")
	fmt.Println("To reset, stop the server and delete the database file.")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	if err := config.Init(); err != nil {
		return err
	}

	dbPath := config.GetString("database.path")

	fmt.Println("Archive Database Status")
	fmt.Println(repeatString("=", 50))
	fmt.Printf("Database: %s\n\n", dbPath)

	db, err := database.Initialize(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	for _, table := range []string{"archived_annotations", "assignment_records"} {
		var count int64
		err := db.DB.Raw(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&count).Error
		if err != nil {
			return fmt.Errorf("failed to inspect schema: %w", err)
		}

		status := "missing (run 'migrate up')"
		if count > 0 {
			status = "present"
		}
		fmt.Printf("  %-25s %s\n", table, status)
	}

	return nil
}

// repeatString repeats a string n times
func repeatString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	result := ""
	for i := 0; i < n; i++ {
		result += s
	}
	return result
}
