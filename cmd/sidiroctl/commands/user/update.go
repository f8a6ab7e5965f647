package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
)

var updateFile string

var updateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update a user configuration",
	Long: `Replace a user's configuration with the record from a JSON file.

The record's userName must match the stored one; user names are
immutable after creation.

Examples:
  # Update from a file
  sidiroctl user update testLocalAdmin22 --app ten-factory --file user.json`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "JSON file with the user configuration record (required)")
	_ = updateCmd.MarkFlagRequired("file")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	record, err := readRecordFile(updateFile)
	if err != nil {
		return err
	}

	updated, err := client.UpdateUser(appID, args[0], record)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("User '%s' updated", updated.UserID))
	return nil
}
