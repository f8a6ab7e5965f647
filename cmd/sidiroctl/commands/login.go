package commands

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/WKolaj/SIDIRO-sub006/cmd/sidiroctl/cmdutil"
	"github.com/WKolaj/SIDIRO-sub006/internal/cli/credentials"
	"github.com/WKolaj/SIDIRO-sub006/internal/cli/prompt"
	"github.com/WKolaj/SIDIRO-sub006/pkg/apiclient"
)

var (
	loginServer  string
	loginToken   string
	loginContext string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a server URL and bearer token",
	Long: `Store a server URL and platform bearer token as a named context.

The token is issued by the platform's identity provider, not by the
sidiro server; sidiroctl stores it as-is and sends it with every request.

Examples:
  # Log in interactively (prompts for the token)
  sidiroctl login --server http://localhost:8080

  # Log in non-interactively
  sidiroctl login --server http://localhost:8080 --token <jwt>

  # Store a separate context for another environment
  sidiroctl login --server https://sidiro.example.com --context production`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginServer, "server", "", "Server URL (required)")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Bearer token (prompted if omitted)")
	loginCmd.Flags().StringVar(&loginContext, "context", "default", "Context name to store the credentials under")
	_ = loginCmd.MarkFlagRequired("server")
}

func runLogin(cmd *cobra.Command, args []string) error {
	token := loginToken
	if token == "" {
		var err error
		token, err = prompt.Password("Bearer token")
		if err != nil {
			if prompt.IsAborted(err) {
				fmt.Println("\nAborted.")
				return nil
			}
			return err
		}
	}
	if token == "" {
		return fmt.Errorf("a bearer token is required")
	}

	// Verify the credentials against the server before storing them
	if _, err := apiclient.New(loginServer).WithToken(token).ListApplications(); err != nil {
		return fmt.Errorf("login check failed: %w", err)
	}

	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	ctx := &credentials.Context{
		ServerURL: loginServer,
		Token:     token,
		ExpiresAt: tokenExpiry(token),
	}
	if err := store.SetContext(loginContext, ctx); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Logged in to %s (context %q)", loginServer, loginContext))
	if !ctx.ExpiresAt.IsZero() {
		fmt.Printf("Token expires at %s\n", ctx.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// tokenExpiry extracts the exp claim without verifying the signature.
// The server verifies every request anyway; the expiry is only used to
// warn the user before sending requests that are doomed to fail.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
