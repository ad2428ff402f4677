package logout

import (
	"fmt"

	"github.com/spf13/cobra"

	"transferdesk/internal/interfaces/cli/bootstrap"
)

var configDir string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear stored credentials",
		Long:  `End the current session. The backend is notified on a best-effort basis; local credentials are cleared either way.`,
		RunE:  run,
	}

	cmd.Flags().StringVar(&configDir, "config", "", "Config directory")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.Setup(configDir)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	if err := app.Store.Initialize(ctx); err != nil {
		return err
	}

	wasAuthenticated := app.Store.Current().Authenticated()

	if err := app.Store.Logout(ctx); err != nil {
		return err
	}

	if wasAuthenticated {
		fmt.Println("Signed out")
	} else {
		fmt.Println("Not signed in; stored credentials cleared")
	}
	return nil
}
