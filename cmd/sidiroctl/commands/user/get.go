package user

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	"github.com/WKolaj/SIDIRO-sub006/internal/cli/output"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

var getCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show one user configuration",
	Long: `Show the configuration of one user.

Examples:
  # Show a user
  sidiroctl user get testLocalAdmin22 --app ten-factory

  # Output the full record as JSON
  sidiroctl user get testLocalAdmin22 --app ten-factory -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	user, err := client.GetUser(appID, args[0])
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	table := output.NewTableData("FIELD", "VALUE")
	table.AddRow("user id", user.UserID)
	table.AddRow("app id", user.AppID)
	table.AddRow("user name", user.UserName)
	table.AddRow("role", user.Permissions.Role.String())
	table.AddRow("plants", formatPlants(user.Permissions.Plants))

	return cmdutil.PrintResource(os.Stdout, user, table)
}

func formatPlants(plants map[string]userconfig.PlantPermission) string {
	if len(plants) == 0 {
		return "-"
	}
	entries := make([]string, 0, len(plants))
	for plant, perm := range plants {
		entries = append(entries, fmt.Sprintf("%s (%s)", plant, perm))
	}
	sort.Strings(entries)
	return strings.Join(entries, ", ")
}
