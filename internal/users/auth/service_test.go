// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected an application error, got %v", err)
	return ae.HTTPStatus
}

func TestService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_user_and_mails_code", func(t *testing.T) {
		f := newFixture(t)

		echoed, err := f.service.Signup(ctx, auth.SignupInput{Username: " critic ", Email: "critic@yamdb.test", Bio: "noir"})
		require.NoError(t, err)
		assert.Equal(t, &auth.SignupInput{Username: "critic", Email: "critic@yamdb.test", Bio: "noir"}, echoed)
		assert.Equal(t, 1, f.repo.Count())

		code := f.outbox.lastCode(t, "critic@yamdb.test")
		user, err := f.repo.FindByUsername(ctx, "critic")
		require.NoError(t, err)
		assert.Equal(t, sec.RoleUser, user.Role)
		assert.Equal(t, sec.HashToken(code), f.repo.Code(user.ID), "only the digest is stored")
	})

	t.Run("same_identity_reissues", func(t *testing.T) {
		f := newFixture(t)
		input := auth.SignupInput{Username: "critic", Email: "critic@yamdb.test"}

		_, err := f.service.Signup(ctx, input)
		require.NoError(t, err)
		first := f.outbox.lastCode(t, input.Email)

		_, err = f.service.Signup(ctx, input)
		require.NoError(t, err)
		second := f.outbox.lastCode(t, input.Email)

		assert.Equal(t, 1, f.repo.Count())
		assert.NotEqual(t, first, second)

		_, err = f.service.Token(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: first})
		assert.ErrorIs(t, err, auth.ErrInvalidCode, "a re-issued code replaces the old one")
	})

	t.Run("rejects_taken_identity", func(t *testing.T) {
		f := newFixture(t)
		f.repo.Seed("critic", "critic@yamdb.test", sec.RoleUser)

		_, err := f.service.Signup(ctx, auth.SignupInput{Username: "critic", Email: "other@yamdb.test"})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

		_, err = f.service.Signup(ctx, auth.SignupInput{Username: "other", Email: "CRITIC@yamdb.test"})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

		assert.Zero(t, f.outbox.count())
	})

	t.Run("reserved_usernames", func(t *testing.T) {
		f := newFixture(t)
		for _, name := range []string{"me", "ME", "Me"} {
			_, err := f.service.Signup(ctx, auth.SignupInput{Username: name, Email: "someone@yamdb.test"})
			assert.Equal(t, http.StatusBadRequest, statusOf(t, err), name)
		}
		assert.Zero(t, f.repo.Count())
	})

	t.Run("missing_fields", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Signup(ctx, auth.SignupInput{})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Len(t, ae.Details, 2)
	})

	t.Run("resend_cooldown", func(t *testing.T) {
		f := newFixture(t, withResend(time.Minute))
		input := auth.SignupInput{Username: "critic", Email: "critic@yamdb.test"}

		_, err := f.service.Signup(ctx, input)
		require.NoError(t, err)

		_, err = f.service.Signup(ctx, input)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusTooManyRequests, ae.HTTPStatus)
		assert.Equal(t, 60, ae.RetryAfter)
		assert.Equal(t, 1, f.outbox.count())

		f.cooldown.now = f.cooldown.now.Add(time.Minute)
		_, err = f.service.Signup(ctx, input)
		assert.NoError(t, err)
	})

	t.Run("failed_mail_frees_cooldown", func(t *testing.T) {
		f := newFixture(t, withResend(time.Minute))
		input := auth.SignupInput{Username: "critic", Email: "critic@yamdb.test"}

		f.outbox.failWith(errors.New("smtp: connection refused"))
		_, err := f.service.Signup(ctx, input)
		assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
		assert.Zero(t, f.outbox.count())

		f.outbox.failWith(nil)
		_, err = f.service.Signup(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, 1, f.outbox.count())
		assert.NotEmpty(t, f.outbox.lastCode(t, input.Email))

		_, err = f.service.Signup(ctx, input)
		assert.Equal(t, http.StatusTooManyRequests, apperr.As(err).HTTPStatus)
	})
}

func TestService_Token(t *testing.T) {
	ctx := context.Background()

	signup := func(t *testing.T, f fixture) string {
		t.Helper()
		_, err := f.service.Signup(ctx, auth.SignupInput{Username: "critic", Email: "critic@yamdb.test"})
		require.NoError(t, err)
		return f.outbox.lastCode(t, "critic@yamdb.test")
	}

	t.Run("exchanges_once", func(t *testing.T) {
		f := newFixture(t)
		code := signup(t, f)

		token, err := f.service.Token(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: code})
		require.NoError(t, err)

		claims, err := f.tokens.VerifyToken(token.Token)
		require.NoError(t, err)
		assert.Equal(t, "critic", claims.Username)
		assert.Equal(t, sec.RoleUser, claims.Role)

		_, err = f.service.Token(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: code})
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
	})

	t.Run("wrong_code", func(t *testing.T) {
		f := newFixture(t)
		signup(t, f)
		_, err := f.service.Token(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: "guess"})
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
	})

	t.Run("unknown_user", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Token(ctx, auth.TokenInput{Username: "ghost", ConfirmationCode: "whatever"})
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("missing_fields", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Token(ctx, auth.TokenInput{Username: "critic"})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
		assert.Equal(t, auth.FieldConfirmationCode, ae.Details[0].Field)
	})

	t.Run("signing_failure_keeps_code", func(t *testing.T) {
		f := newFixture(t)
		code := signup(t, f)

		broken := auth.NewService(auth.Options{Accounts: f.repo, Tokens: brokenIssuer{}, Logger: discard()})
		_, err := broken.Token(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: code})
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))

		_, err = f.service.Token(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: code})
		assert.NoError(t, err)
	})

	t.Run("concurrent_exchange", func(t *testing.T) {
		f := newFixture(t)
		code := signup(t, f)

		const workers = 16
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.service.Token(ctx, auth.TokenInput{Username: "critic", ConfirmationCode: code})
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
					return
				}
				assert.ErrorIs(t, err, auth.ErrInvalidCode)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
	})
}
