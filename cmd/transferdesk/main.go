package main

import (
	"os"

	"github.com/spf13/cobra"

	"transferdesk/internal/interfaces/cli/login"
	"transferdesk/internal/interfaces/cli/logout"
	"transferdesk/internal/interfaces/cli/serve"
	"transferdesk/internal/interfaces/cli/status"
	"transferdesk/internal/interfaces/cli/whoami"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "transferdesk",
		Short: "TransferDesk - operator console for the technology transfer dashboard",
		Long:  `TransferDesk signs in to the university technology-transfer dashboard backend, keeps the session token across runs, and serves a role-guarded local portal.`,
	}

	rootCmd.AddCommand(
		login.NewCommand(),
		logout.NewCommand(),
		whoami.NewCommand(),
		status.NewCommand(),
		serve.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
