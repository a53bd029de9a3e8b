package cmd

import (
	"context"
	"errors"
	"fmt"

	"microblog/internal/auth"
	"microblog/internal/repositories"
	"microblog/internal/services"
	"microblog/internal/services/dto"
	"microblog/internal/validator"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create <username> <email>",
	Short: "Create a user account",
	Long: `Create a user account with the same checks as the registration form.

Examples:
  microblogctl users create susan susan@example.com --password secret`,
	Args: cobra.ExactArgs(2),
	RunE: runUsersCreate,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	Args:  cobra.NoArgs,
	RunE:  runUsersList,
}

func init() {
	usersCreateCmd.Flags().StringP("password", "p", "", "account password")
	_ = usersCreateCmd.MarkFlagRequired("password")

	usersListCmd.Flags().Int("page", 1, "page number")
	usersListCmd.Flags().Int("per-page", 50, "users per page")

	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersCreate(cmd *cobra.Command, args []string) error {
	cfg, db, err := loadEnv()
	if err != nil {
		printError(err)
		return err
	}
	defer closeDB(db)

	password, _ := cmd.Flags().GetString("password")
	req := &dto.RegisterRequest{
		Username:  args[0],
		Email:     args[1],
		Password:  password,
		Password2: password,
	}

	v, err := validator.New(nil)
	if err != nil {
		return err
	}
	if err := v.Validate(req); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr.Errors {
				fmt.Printf("  %s: %s\n", field, msg)
			}
		}
		printError(err)
		return err
	}

	// письма при регистрации не отправляются, поэтому почта не нужна
	authService := services.NewAuthService(
		repositories.NewUserRepository(),
		auth.NewResetTokens(cfg.Security.SecretKey, cfg.ResetTokenTTL()),
		nil, nil,
		services.AuthConfig{BaseURL: cfg.Server.BaseURL, Sender: cfg.Sender()},
	)
	user, err := authService.Register(context.Background(), db, req)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(user)
	}
	fmt.Printf("Created user %s (%s)\n", user.Username, user.ID)
	return nil
}

func runUsersList(cmd *cobra.Command, args []string) error {
	_, db, err := loadEnv()
	if err != nil {
		printError(err)
		return err
	}
	defer closeDB(db)

	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")

	userService := services.NewUserService(repositories.NewUserRepository(), repositories.NewFollowRepository())
	users, total, err := userService.List(context.Background(), db, page, perPage)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"users": users,
			"total": total,
		})
	}

	if len(users) == 0 {
		fmt.Println("No users found")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tLAST SEEN")
	for _, u := range users {
		lastSeen := "never"
		if !u.LastSeen.IsZero() {
			lastSeen = u.LastSeen.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, lastSeen)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d of %d users\n", len(users), total)
	return nil
}
