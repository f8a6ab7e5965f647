package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	"github.com/WKolaj/SIDIRO-sub006/internal/cli/output"
)

var getCmd = &cobra.Command{
	Use:   "get <app-id>",
	Short: "Show one application",
	Long: `Show the details of one registered application.

Examples:
  # Show a tenant application
  sidiroctl app get ten-factory

  # Show a subtenant application
  sidiroctl app get ten-factory-sub-line2`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	app, err := client.GetApplication(args[0])
	if err != nil {
		return fmt.Errorf("failed to get application: %w", err)
	}

	table := output.NewTableData("FIELD", "VALUE")
	table.AddRow("app id", app.AppID)
	table.AddRow("tenant", app.Tenant)
	table.AddRow("subtenant", cmdutil.EmptyOr(app.Subtenant, "-"))
	table.AddRow("container", app.ContainerID)
	table.AddRow("subtenant scoped", cmdutil.BoolToYesNo(app.IsSubtenant))
	table.AddRow("descriptor", descriptorState(*app))
	table.AddRow("app name", cmdutil.EmptyOr(app.AppName, "-"))
	table.AddRow("max users", maxUsers(app.MaxNumberOfUsers))
	table.AddRow("users", strconv.Itoa(app.Users))

	return cmdutil.PrintResource(os.Stdout, app, table)
}
