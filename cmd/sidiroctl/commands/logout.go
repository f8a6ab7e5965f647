package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	"github.com/WKolaj/SIDIRO-sub006/internal/cli/credentials"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored token of the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}

		if err := store.ClearCurrentContext(); err != nil {
			if errors.Is(err, credentials.ErrNoCurrentContext) {
				fmt.Println("Not logged in.")
				return nil
			}
			return err
		}

		cmdutil.PrintSuccess("Logged out")
		return nil
	},
}
