// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"strings"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	apperrors "github.com/ryo-clouds/fortress-panel-sub001/internal/errors"
	"github.com/ryo-clouds/fortress-panel-sub001/internal/httperrors"
)

var (
	loginUsername string
	loginRemember bool
)

// loginCmd authenticates against the Fortress panel with username and
// password and persists the resulting session locally. The password is
// always prompted interactively, never passed as a flag.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Authenticate against the Fortress panel",
	Long: `The login command authenticates against the Fortress panel with a username
and password. On success the session (user and token pair) is persisted
locally and subsequent commands run authenticated until logout or session
expiry.

The password is read from an interactive prompt and never echoed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, _, err := newStore()
		if err != nil {
			return err
		}
		if err := store.InitializeAuth(ctx); err == nil && store.IsAuthenticated() {
			if u := store.CurrentUser(); u != nil {
				pterm.Info.Printf("Already logged in as %s\n", u.Username)
				return nil
			}
		}

		username := strings.TrimSpace(loginUsername)
		if username == "" {
			username, err = pterm.DefaultInteractiveTextInput.Show("Username")
			if err != nil {
				return err
			}
			username = strings.TrimSpace(username)
		}
		password, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
		if err != nil {
			return err
		}

		cursor.Hide()
		defer cursor.Show()
		spinner, _ := pterm.DefaultSpinner.Start("Signing in to the Fortress panel")

		if err := store.Login(ctx, username, password, loginRemember); err != nil {
			spinner.Fail(store.Err())
			var e *apperrors.E
			if errors.As(err, &e) && e.Err != nil && apperrors.KindOf(e.Err) == "" {
				return httperrors.FormatNetworkError(e.Err, "signing in")
			}
			return err
		}
		spinner.Stop()

		if u := store.CurrentUser(); u != nil {
			pterm.Success.Printf("Logged in as %s (%s)\n", u.Username, u.Role)
		} else {
			pterm.Success.Println("Logged in")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Panel username")
	loginCmd.Flags().BoolVarP(&loginRemember, "remember", "r", false, "Request an extended session")
}
