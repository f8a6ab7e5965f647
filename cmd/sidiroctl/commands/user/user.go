// Package user implements the 'sidiroctl user' commands.
package user

import (
	"github.com/spf13/cobra"
)

// appID is the application the user commands operate on.
var appID string

// Cmd is the parent command for user configuration operations.
var Cmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users"},
	Short:   "Manage user configurations",
	Long: `Manage the user configurations of one application.

Every user command is scoped to a single application via --app. User
configurations are written through to the platform before the server's
cache is updated, so a successful command means the change is durable.`,
}

func init() {
	Cmd.PersistentFlags().StringVar(&appID, "app", "", "Application id (required)")
	_ = Cmd.MarkPersistentFlagRequired("app")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
}
