package login

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"transferdesk/internal/infrastructure/api"
	"transferdesk/internal/interfaces/cli/bootstrap"
	apperrors "transferdesk/internal/shared/errors"
)

var (
	configDir string
	email     string
	password  string
	remember  bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the dashboard backend",
		Long:  `Authenticate against the TransferDesk dashboard backend and persist the session token. With --remember the token survives restarts; without it the token ends with the current login session.`,
		RunE:  run,
	}

	cmd.Flags().StringVar(&configDir, "config", "", "Config directory")
	cmd.Flags().StringVarP(&email, "email", "u", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	cmd.Flags().BoolVarP(&remember, "remember", "r", false, "Keep the session across restarts")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.Setup(configDir)
	if err != nil {
		return err
	}
	defer app.Close()

	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(string(raw))
	}

	ctx := cmd.Context()
	if err := app.Store.Initialize(ctx); err != nil {
		return err
	}

	if current := app.Store.Current(); current.Authenticated() {
		if current.User.Email == email {
			fmt.Printf("Already signed in as %s (%s)\n", current.User.FullName(), current.User.Role)
			return nil
		}
		// Switching accounts: drop the old session first.
		if err := app.Store.Logout(ctx); err != nil {
			return err
		}
	}

	if err := app.Store.Login(ctx, email, password, remember); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
			// Don't dump the raw backend body on the terminal.
			return apperrors.NewInvalidCredentialsError()
		}
		return err
	}

	user := app.Store.Current().User
	fmt.Printf("Signed in as %s (%s)\n", user.FullName(), user.Role)
	return nil
}
