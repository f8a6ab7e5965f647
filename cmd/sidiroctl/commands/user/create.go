package user

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	"github.com/WKolaj/SIDIRO-sub006/internal/cli/prompt"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

var createFile string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user configuration",
	Long: `Create a new user configuration in an application.

The record can be supplied as a JSON file via --file, or entered
interactively. Interactive creation covers user name and role; plant
permissions are added later with 'sidiroctl user update'.

Examples:
  # Create from a file
  sidiroctl user create --app ten-factory --file user.json

  # Create interactively
  sidiroctl user create --app ten-factory`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "JSON file with the user configuration record")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	var record *userconfig.UserConfigRecord
	if createFile != "" {
		record, err = readRecordFile(createFile)
	} else {
		record, err = promptRecord()
	}
	if err != nil {
		return err
	}
	if record == nil {
		// prompt aborted
		return nil
	}

	created, err := client.CreateUser(appID, record)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("User '%s' created with id '%s'", created.UserName, created.UserID))
	return nil
}

// readRecordFile loads a UserConfigRecord from a JSON file.
func readRecordFile(path string) (*userconfig.UserConfigRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var record userconfig.UserConfigRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("invalid user configuration in %s: %w", path, err)
	}
	return &record, nil
}

// promptRecord builds a minimal record interactively. Returns nil when
// the user aborts.
func promptRecord() (*userconfig.UserConfigRecord, error) {
	userName, err := prompt.InputRequired("User name (email)")
	if err != nil {
		if prompt.IsAborted(err) {
			fmt.Println("\nAborted.")
			return nil, nil
		}
		return nil, err
	}

	role, err := promptRole()
	if err != nil {
		if prompt.IsAborted(err) {
			fmt.Println("\nAborted.")
			return nil, nil
		}
		return nil, err
	}

	return &userconfig.UserConfigRecord{
		Data:     map[string]any{},
		Config:   map[string]any{},
		UserName: userName,
		Permissions: userconfig.PermissionSet{
			Role:   role,
			Plants: map[string]userconfig.PlantPermission{},
		},
	}, nil
}

func promptRole() (userconfig.Role, error) {
	options := []prompt.SelectOption{
		{Label: "GlobalAdmin", Value: "0", Description: "Administers every plant"},
		{Label: "LocalAdmin", Value: "1", Description: "Administers granted plants"},
		{Label: "GlobalUser", Value: "2", Description: "Reads every plant"},
		{Label: "LocalUser", Value: "3", Description: "Reads granted plants"},
	}
	value, err := prompt.Select("Role", options)
	if err != nil {
		return 0, err
	}
	switch value {
	case "0":
		return userconfig.RoleGlobalAdmin, nil
	case "1":
		return userconfig.RoleLocalAdmin, nil
	case "2":
		return userconfig.RoleGlobalUser, nil
	default:
		return userconfig.RoleLocalUser, nil
	}
}
