// Copyright (c) 2025 Fortress Panel
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the fortress session
// client. It implements subcommands for logging in and out of the Fortress
// panel, inspecting the current session and rotating tokens, using the Cobra
// CLI framework with pterm for terminal output.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryo-clouds/fortress-panel-sub001/internal/backend"
	"github.com/ryo-clouds/fortress-panel-sub001/internal/config"
	"github.com/ryo-clouds/fortress-panel-sub001/internal/logging"
	"github.com/ryo-clouds/fortress-panel-sub001/internal/session"
	"github.com/ryo-clouds/fortress-panel-sub001/internal/storage"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "fortress",
	Short:         "Fortress panel session client",
	Long:          `Fortress is a command-line client for the Fortress panel authentication API. It manages the local session: login, logout, token refresh and session inspection.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("fortress %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during
// execution. Error text is masked so tokens never reach the terminal.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, logging.PresentError("fortress", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
}

// newStore wires config, logger, backend and storage into a session store.
func newStore() (*session.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	st, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, cfg, err
	}
	be := backend.New(cfg.APIBaseURL, backend.WithTimeout(cfg.RequestTimeout))
	return session.New(be, st, logging.New(cfg.LogLevel)), cfg, nil
}
