// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/access"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/account/accounttest"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

type fixture struct {
	service   *account.Service
	repo      *accounttest.Memory
	admin     *access.Subject
	moderator *access.Subject
	user      *access.Subject
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repo := accounttest.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return fixture{
		service:   account.NewService(repo, logger),
		repo:      repo,
		admin:     repo.Seed("root", "root@yamdb.test", sec.RoleAdmin).Subject(),
		moderator: repo.Seed("keeper", "keeper@yamdb.test", sec.RoleModerator).Subject(),
		user:      repo.Seed("critic", "critic@yamdb.test", sec.RoleUser).Subject(),
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected an application error, got %v", err)
	return ae.HTTPStatus
}

func TestService_AdminSurface(t *testing.T) {
	ctx := context.Background()

	t.Run("only_admins_list", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.service.List(ctx, nil, access.KindUserAdmin, account.Filter{}, 10, 0)
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

		_, _, err = f.service.List(ctx, f.moderator, access.KindUserAdmin, account.Filter{}, 10, 0)
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))

		users, total, err := f.service.List(ctx, f.admin, access.KindUserAdmin, account.Filter{Search: "RIT"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "critic", users[0].Username)
	})

	t.Run("create_with_role", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.service.Create(ctx, f.admin, account.Input{
			Username: pointer.To("curator"),
			Email:    pointer.To("curator@yamdb.test"),
			Role:     pointer.To(sec.RoleModerator),
		})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleModerator, created.Role)
	})

	t.Run("create_defaults_to_user", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.service.Create(ctx, f.admin, account.Input{
			Username: pointer.To("reader"),
			Email:    pointer.To("reader@yamdb.test"),
		})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleUser, created.Role)
	})

	t.Run("create_rejects_invalid_role", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Create(ctx, f.admin, account.Input{
			Username: pointer.To("reader"),
			Email:    pointer.To("reader@yamdb.test"),
			Role:     pointer.To(sec.UserRole("emperor")),
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		require.Len(t, ae.Details, 1)
		assert.Equal(t, account.FieldRole, ae.Details[0].Field)
		assert.Equal(t, "Must be one of: user, moderator, admin", ae.Details[0].Message)
	})

	t.Run("duplicates_in_any_case", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Create(ctx, f.admin, account.Input{
			Username: pointer.To("CRITIC"),
			Email:    pointer.To("CRITIC@yamdb.test"),
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		require.Len(t, ae.Details, 2)
		assert.Equal(t, account.FieldUsername, ae.Details[0].Field)
		assert.Equal(t, account.FieldEmail, ae.Details[1].Field)
	})

	t.Run("reserved_username", func(t *testing.T) {
		f := newFixture(t)
		for _, name := range []string{"me", "ME", "Me"} {
			_, err := f.service.Create(ctx, f.admin, account.Input{Username: pointer.To(name), Email: pointer.To("x@yamdb.test")})
			assert.Equal(t, http.StatusBadRequest, statusOf(t, err), name)
		}
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture(t)
		assert.Equal(t, http.StatusForbidden, statusOf(t, f.service.Delete(ctx, f.moderator, "critic")))
		require.NoError(t, f.service.Delete(ctx, f.admin, "critic"))
		assert.Equal(t, http.StatusNotFound, statusOf(t, f.service.Delete(ctx, f.admin, "critic")))
	})

	t.Run("admin_changes_role", func(t *testing.T) {
		f := newFixture(t)
		updated, err := f.service.Update(ctx, f.admin, access.KindUserAdmin, "critic", account.Input{Role: pointer.To(sec.RoleModerator)}, true)
		require.NoError(t, err)
		assert.Equal(t, sec.RoleModerator, updated.Role)
	})
}

func TestService_DirectorySurface(t *testing.T) {
	ctx := context.Background()

	t.Run("users_cannot_browse", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.service.List(ctx, f.user, access.KindUserDirectory, account.Filter{}, 10, 0)
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("moderator_edits_but_not_role", func(t *testing.T) {
		f := newFixture(t)
		updated, err := f.service.Update(ctx, f.moderator, access.KindUserDirectory, "critic", account.Input{
			Bio:  pointer.To("Writes about noir"),
			Role: pointer.To(sec.RoleAdmin),
		}, true)
		require.NoError(t, err)
		assert.Equal(t, "Writes about noir", updated.Bio)
		assert.Equal(t, sec.RoleUser, updated.Role)
	})

	t.Run("missing_target", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Get(ctx, f.moderator, access.KindUserDirectory, "ghost")
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})
}

func TestService_SelfSurface(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Me(ctx, nil)
		assert.ErrorIs(t, err, access.ErrAuthenticationRequired)
	})

	t.Run("role_is_ignored", func(t *testing.T) {
		f := newFixture(t)
		updated, err := f.service.UpdateMe(ctx, f.user, account.Input{
			FirstName: pointer.To("Pauline"),
			Role:      pointer.To(sec.RoleAdmin),
		})
		require.NoError(t, err)
		assert.Equal(t, "Pauline", updated.FirstName)
		assert.Equal(t, sec.RoleUser, updated.Role)

		stored, err := f.service.Me(ctx, f.user)
		require.NoError(t, err)
		assert.Equal(t, sec.RoleUser, stored.Role)
	})

	t.Run("keeps_own_email", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.UpdateMe(ctx, f.user, account.Input{Email: pointer.To("critic@yamdb.test")})
		assert.NoError(t, err)
	})

	t.Run("bio_limit", func(t *testing.T) {
		f := newFixture(t)
		long := make([]byte, 501)
		for i := range long {
			long[i] = 'a'
		}
		_, err := f.service.UpdateMe(ctx, f.user, account.Input{Bio: pointer.To(string(long))})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})
}

func TestService_Promote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	promoted, err := f.service.Promote(ctx, "critic", sec.RoleAdmin, true)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, promoted.Role)
	assert.True(t, promoted.IsSuperuser)

	_, err = f.service.Promote(ctx, "critic", sec.UserRole("root"), false)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, err := f.service.Register(ctx, account.Input{
		Username: pointer.To("newcomer"),
		Email:    pointer.To("newcomer@yamdb.test"),
		Role:     pointer.To(sec.RoleAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Equal(t, 4, f.repo.Count())

	_, err = f.service.Register(ctx, account.Input{Username: pointer.To("Me"), Email: pointer.To("me@yamdb.test")})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}
