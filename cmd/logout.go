// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd clears the local session. The panel is notified best-effort;
// network failures never prevent the local clear.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and remove saved credentials",
	Long: `The logout command ends the current session. It notifies the Fortress panel
(best-effort, failures are ignored) and unconditionally removes the locally
persisted session record, including both tokens and the cached user.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, _, err := newStore()
		if err != nil {
			return err
		}
		// Load tokens so the panel can be notified; corrupt state just
		// means there is nothing to notify about.
		_ = store.InitializeAuth(ctx)

		store.Logout(ctx)

		pterm.Success.Println("Logged out, session cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
