package cmd

import (
	"fmt"

	"microblog/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, db, err := loadEnv()
	if err != nil {
		printError(err)
		return err
	}
	defer closeDB(db)

	if err := database.AutoMigrate(db); err != nil {
		printError(err)
		return err
	}
	fmt.Printf("Schema is up to date (%s)\n", cfg.Database.Driver)
	return nil
}
