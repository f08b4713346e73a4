package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"recipefinder/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"status"},
	Short:   "Show current user information",
	Long:    "Display the logged in account, when its token expires and which server is used",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		out := cmd.OutOrStdout()
		token := a.session.Token()
		if token == "" {
			fmt.Fprintln(out, "You are not logged in")
			fmt.Fprintf(out, "Server: %s\n", a.cfg.ServerURL)
			return nil
		}

		info := session.Describe(token)
		email := info.Email
		if email == "" {
			email = a.cfg.Email
		}

		if email != "" {
			fmt.Fprintf(out, "Logged in as: %s\n", email)
		} else {
			fmt.Fprintln(out, "You are logged in, but user details are not available")
		}
		if info.Subject != "" {
			fmt.Fprintf(out, "User ID: %s\n", info.Subject)
		}
		if !info.ExpiresAt.IsZero() {
			expires := info.ExpiresAt.Local().Format(time.RFC1123)
			if info.Expired(time.Now()) {
				printWarning(out, "Token expired: %s (run 'recipes login')", expires)
			} else {
				fmt.Fprintf(out, "Token expires: %s\n", expires)
			}
		}
		fmt.Fprintf(out, "Server: %s\n", a.cfg.ServerURL)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
