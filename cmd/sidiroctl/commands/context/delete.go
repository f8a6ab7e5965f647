package context

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	"github.com/WKolaj/SIDIRO-sub006/internal/cli/credentials"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a stored context",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}

		return cmdutil.RunDeleteWithConfirmation("context", args[0], deleteForce, func() error {
			return store.DeleteContext(args[0])
		})
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}
