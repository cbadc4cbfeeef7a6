// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package command defines the yamdbctl command tree.
package command

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/platform/constants"
)

// NewRootCommand builds the command tree. Subcommands read DATABASE_URL and
// MIGRATION_PATH from the environment (or a local .env file).
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "yamdbctl",
		Short: "yamdbctl - yamdb operator tool",
		Long: `yamdbctl runs the maintenance tasks that have no HTTP surface:
- apply or roll back database migrations
- grant a role or the superuser flag to an account
- generate the RSA key pair that signs access tokens`,
		SilenceUsage: true,
	}

	root.AddCommand(newMigrateCommand(), newUserCommand(), newKeysCommand())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// logger writes JSON to stderr so command output on stdout stays clean.
func logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, nil)).
		With(slog.String(constants.FieldApp, "yamdbctl"))
}
