package status

import (
	"fmt"

	"github.com/spf13/cobra"

	"transferdesk/internal/interfaces/cli/bootstrap"
)

var configDir string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show backend reachability and session state",
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

	fmt.Printf("Backend:  %s\n", app.Config.API.BaseURL)
	if err := app.Store.Client().Ping(ctx); err != nil {
		fmt.Printf("Reachable: no (%v)\n", err)
	} else {
		fmt.Println("Reachable: yes")
	}

	if err := app.Store.Initialize(ctx); err != nil {
		return err
	}

	state := app.Store.Current()
	if state.Authenticated() {
		fmt.Printf("Session:  %s (%s)\n", state.User.Email, state.User.Role)
	} else {
		fmt.Println("Session:  anonymous")
	}
	fmt.Printf("Storage:  durable backend %q\n", app.Config.Storage.DurableBackend)
	return nil
}
