// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package command

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/platform/config"
	pgstore "github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
)

// promoter is the account operation behind "user promote".
type promoter interface {
	Promote(context context.Context, username string, role sec.UserRole, superuser bool) (*account.User, error)
}

func newUserCommand() *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Account maintenance",
	}
	user.AddCommand(newPromoteCommand(connectAccounts))
	return user
}

// connectAccounts opens a pool and returns the account service with a closer.
func connectAccounts(context context.Context) (promoter, func(), error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, nil, err
	}

	log := logger()
	pool, err := pgstore.NewPool(context, cfg.DatabaseURL, log)
	if err != nil {
		return nil, nil, err
	}

	return account.NewService(account.NewPostgresRepository(pool), log), pool.Close, nil
}

func newPromoteCommand(connect func(context.Context) (promoter, func(), error)) *cobra.Command {
	var (
		role      string
		superuser bool
	)

	promote := &cobra.Command{
		Use:   "promote [username]",
		Short: "Set the role and superuser flag of an account",
		Long: `Set the role and superuser flag of an account directly, bypassing the API.
Use it to bootstrap the first admin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := sec.UserRole(role)
			if !target.IsValid() {
				return fmt.Errorf("invalid role %q: must be one of user, moderator, admin", role)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			service, closeFn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			user, err := service.Promote(ctx, args[0], target, superuser)
			if err != nil {
				return fmt.Errorf("failed to promote %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (superuser: %t)\n", user.Username, user.Role, user.IsSuperuser)
			return nil
		},
	}

	promote.Flags().StringVar(&role, "role", string(sec.RoleAdmin), "role to assign")
	promote.Flags().BoolVar(&superuser, "superuser", false, "grant the superuser flag")
	return promote
}
