package whoami

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"transferdesk/internal/interfaces/cli/bootstrap"
)

var (
	configDir  string
	jsonOutput bool
)

// ErrNotSignedIn is returned when no verified session exists.
var ErrNotSignedIn = errors.New("not signed in")

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity of the current session",
		RunE:  run,
	}

	cmd.Flags().StringVar(&configDir, "config", "", "Config directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the identity as JSON")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.Setup(configDir)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Store.Initialize(cmd.Context()); err != nil {
		return err
	}

	state := app.Store.Current()
	if !state.Authenticated() {
		return ErrNotSignedIn
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(state.User)
	}

	fmt.Printf("%s <%s>\n", state.User.FullName(), state.User.Email)
	fmt.Printf("Role:    %s\n", state.User.Role)
	if state.User.College != "" {
		fmt.Printf("College: %s\n", state.User.College)
	}
	return nil
}
