// Package context implements the 'sidiroctl context' commands.
package context

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for context operations.
var Cmd = &cobra.Command{
	Use:     "context",
	Aliases: []string{"ctx", "contexts"},
	Short:   "Manage stored server contexts",
	Long: `Manage the server contexts stored by 'sidiroctl login'.

A context holds a server URL and bearer token. The current context is
used by every command unless overridden with --server and --token.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(useCmd)
	Cmd.AddCommand(deleteCmd)
}
