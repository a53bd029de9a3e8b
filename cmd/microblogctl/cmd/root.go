package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	configPath string
	jsonOut    bool
)

var rootCmd = &cobra.Command{
	Use:   "microblogctl",
	Short: "Administrative tool for the microblog",
	Long: `microblogctl runs maintenance tasks against the microblog database.

Examples:
  microblogctl migrate
  microblogctl users create susan susan@example.com --password secret
  microblogctl users list --page 2
  microblogctl mail retry --limit 50`,
	SilenceUsage: true,
}

// Execute запускает корневую команду.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: $CONFIG_PATH or config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print output as JSON")
}

// loadEnv читает конфигурацию, настраивает логгер и открывает базу.
func loadEnv() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.Server.Env)

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
