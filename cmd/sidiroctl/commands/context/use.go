package context

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	"github.com/WKolaj/SIDIRO-sub006/internal/cli/credentials"
)

var useCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch the current context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}

		if err := store.UseContext(args[0]); err != nil {
			return err
		}

		cmdutil.PrintSuccess(fmt.Sprintf("Switched to context '%s'", args[0]))
		return nil
	},
}
