package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	"github.com/WKolaj/SIDIRO-sub006/internal/cli/output"
	"github.com/WKolaj/SIDIRO-sub006/internal/cli/timeutil"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server readiness",
	Long: `Check the sidiro server's readiness probe.

The server reports ready once the application registry has been loaded
from the platform.

Examples:
  # Check readiness
  sidiroctl status

  # Output as JSON
  sidiroctl status -o json`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	status, err := client.Ready()
	if err != nil {
		return fmt.Errorf("server is not ready: %w", err)
	}

	table := output.NewTableData("FIELD", "VALUE")
	table.AddRow("status", status.Status)
	if status.Timestamp != "" {
		table.AddRow("checked", timeutil.FormatTime(status.Timestamp))
	}
	if status.Error != "" {
		table.AddRow("error", status.Error)
	}

	return cmdutil.PrintResource(os.Stdout, status, table)
}
