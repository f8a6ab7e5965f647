package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	"github.com/WKolaj/SIDIRO-sub006/pkg/apiclient"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered applications",
	Long: `List the applications of the token's tenant.

Examples:
  # List all applications
  sidiroctl app list

  # Output as JSON
  sidiroctl app list -o json`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	apps, err := client.ListApplications()
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, apps, len(apps) == 0,
		"No applications registered.", &appList{apps})
}

// appList renders applications as a table.
type appList struct {
	apps []apiclient.Application
}

func (l *appList) Headers() []string {
	return []string{"APP ID", "TENANT", "SUBTENANT", "DESCRIPTOR", "MAX USERS", "USERS"}
}

func (l *appList) Rows() [][]string {
	rows := make([][]string, 0, len(l.apps))
	for _, app := range l.apps {
		rows = append(rows, []string{
			app.AppID,
			app.Tenant,
			cmdutil.EmptyOr(app.Subtenant, "-"),
			descriptorState(app),
			maxUsers(app.MaxNumberOfUsers),
			strconv.Itoa(app.Users),
		})
	}
	return rows
}

func descriptorState(app apiclient.Application) string {
	if app.DescriptorLoaded {
		return "loaded"
	}
	return "missing"
}

func maxUsers(limit *int) string {
	if limit == nil {
		return "unlimited"
	}
	return strconv.Itoa(*limit)
}
