// Package app implements the 'sidiroctl app' commands.
package app

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for application operations.
var Cmd = &cobra.Command{
	Use:     "app",
	Aliases: []string{"apps", "application", "applications"},
	Short:   "Inspect registered applications",
	Long: `Inspect the applications registered with the sidiro server.

Applications are discovered from the platform at startup; these commands
show the registry as the server currently holds it.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
}
