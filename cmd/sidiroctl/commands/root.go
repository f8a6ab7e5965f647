// Package commands implements the sidiroctl CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	appcmd "github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/commands/app"
	contextcmd "github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/commands/context"
	usercmd "github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/commands/user"
)

// Version information injected at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sidiroctl",
	Short: "sidiroctl - manage a sidiro server",
	Long: `sidiroctl is the command line client for the sidiro
user-configuration proxy. It talks to the proxy's REST API to inspect
registered applications and manage their user configurations.

Authenticate once with 'sidiroctl login', then use the application and
user commands against the stored context.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cmdutil.Flags.ServerURL, "server", "", "Server URL (overrides stored context)")
	rootCmd.PersistentFlags().StringVar(&cmdutil.Flags.Token, "token", "", "Bearer token (overrides stored context)")
	rootCmd.PersistentFlags().StringVarP(&cmdutil.Flags.Output, "output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&cmdutil.Flags.NoColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(appcmd.Cmd)
	rootCmd.AddCommand(usercmd.Cmd)
	rootCmd.AddCommand(contextcmd.Cmd)
}
