// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// refreshCmd rotates the token pair once. A refresh failure is fatal to the
// session: the store clears itself and the user has to log in again.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rotate the session token pair",
	Long: `The refresh command exchanges the stored refresh token for a new token
pair and persists it. When the panel rejects the refresh token the session
is over: all local state is cleared and a new login is required.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, _, err := newStore()
		if err != nil {
			return err
		}
		_ = store.InitializeAuth(ctx)

		if !store.IsAuthenticated() {
			pterm.Info.Println("Not logged in. Run 'fortress login' to get started.")
			return nil
		}

		if err := store.Refresh(ctx); err != nil {
			pterm.Warning.Println("Session expired. Run 'fortress login' to sign in again.")
			return err
		}

		pterm.Success.Println("Token pair rotated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
