package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <user-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a user configuration",
	Long: `Delete a user's configuration from an application.

The user's file is removed from the platform before the server's cache
entry is cleared.

Examples:
  # Delete with confirmation
  sidiroctl user delete testLocalAdmin22 --app ten-factory

  # Delete without confirmation
  sidiroctl user delete testLocalAdmin22 --app ten-factory --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	return cmdutil.RunDeleteWithConfirmation("user", args[0], deleteForce, func() error {
		if err := client.DeleteUser(appID, args[0]); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
