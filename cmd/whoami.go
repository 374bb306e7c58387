package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// whoamiCmd shows the locally persisted session: the cached user and whether
// a full token pair is held. It makes no network calls.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long: `The whoami command displays the locally persisted session. It rehydrates
the session record and prints the cached account details when a full session
is held. No network calls are made; use 'fortress refresh' to verify the
session against the panel.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := newStore()
		if err != nil {
			return err
		}
		if err := store.InitializeAuth(cmd.Context()); err != nil {
			pterm.Warning.Println("Stored session could not be read; starting fresh.")
		}

		u := store.CurrentUser()
		if !store.IsAuthenticated() || u == nil {
			pterm.Info.Println("Not logged in. Run 'fortress login' to get started.")
			return nil
		}

		pterm.DefaultSection.Println("Current session")
		pterm.Printf("  User:   %s <%s>\n", u.Username, u.Email)
		pterm.Printf("  Role:   %s\n", u.Role)
		pterm.Printf("  Status: %s\n", u.Status)
		if u.MFAEnabled {
			pterm.Printf("  MFA:    enabled\n")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
