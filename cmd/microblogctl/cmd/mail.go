package cmd

import (
	"context"
	"fmt"

	"microblog/internal/app"

	"github.com/spf13/cobra"
)

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Manage outgoing mail",
}

var mailRetryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Resend emails that exhausted their delivery attempts",
	Long: `Resend emails stored in the failed_emails table.

Successfully delivered emails are removed from the table.`,
	Args: cobra.NoArgs,
	RunE: runMailRetry,
}

func init() {
	mailRetryCmd.Flags().Int("limit", 100, "maximum number of emails to resend")

	mailCmd.AddCommand(mailRetryCmd)
	rootCmd.AddCommand(mailCmd)
}

func runMailRetry(cmd *cobra.Command, args []string) error {
	cfg, db, err := loadEnv()
	if err != nil {
		printError(err)
		return err
	}
	defer closeDB(db)

	limit, _ := cmd.Flags().GetInt("limit")

	// воркеры не запускаются: Retry отправляет синхронно
	queue := app.NewMailQueue(cfg, db, nil)
	sent, err := queue.Retry(context.Background(), limit)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]int{"sent": sent})
	}
	fmt.Printf("Resent %d email(s)\n", sent)
	return nil
}
