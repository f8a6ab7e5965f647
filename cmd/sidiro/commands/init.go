package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample sidiro configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/sidiro/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  sidiro init

  # Initialize with custom path
  sidiro init --config /etc/sidiro/config.yaml

  # Force overwrite existing config
  sidiro init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	var configPath string
	var err error

	if configFile != "" {
		// Use custom path
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		// Use default path
		configPath, err = config.InitConfig(initForce)
	}

	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Fill in the platform gateway, tenant and technical credentials")
	fmt.Println("  2. Point api.auth.jwks_url at your identity provider's key set")
	fmt.Println("  3. Start the server with: sidiro start")
	return nil
}
