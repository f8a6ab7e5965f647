package user

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the users of an application",
	Long: `List the user configurations of one application.

Examples:
  # List users
  sidiroctl user list --app ten-factory

  # Output as JSON
  sidiroctl user list --app ten-factory -o json`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	users, err := client.ListUsers(appID)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, users, len(users) == 0,
		"No users configured.", newUserList(users))
}

// userList renders stored users as a table, sorted by user name.
type userList struct {
	users []userconfig.StoredUser
}

func newUserList(users map[string]userconfig.StoredUser) *userList {
	list := make([]userconfig.StoredUser, 0, len(users))
	for _, u := range users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UserName < list[j].UserName
	})
	return &userList{list}
}

func (l *userList) Headers() []string {
	return []string{"USER ID", "USER NAME", "ROLE", "PLANTS"}
}

func (l *userList) Rows() [][]string {
	rows := make([][]string, 0, len(l.users))
	for _, u := range l.users {
		rows = append(rows, []string{
			u.UserID,
			u.UserName,
			u.Permissions.Role.String(),
			strconv.Itoa(len(u.Permissions.Plants)),
		})
	}
	return rows
}
