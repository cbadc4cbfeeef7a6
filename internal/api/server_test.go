// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/api"
	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/mailer"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/account/accounttest"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

type inbox struct {
	mu   sync.Mutex
	last mailer.Message
}

func (box *inbox) Send(_ context.Context, message mailer.Message) error {
	box.mu.Lock()
	defer box.mu.Unlock()
	box.last = message
	return nil
}

func (box *inbox) code(t *testing.T) string {
	t.Helper()
	box.mu.Lock()
	defer box.mu.Unlock()
	match := regexp.MustCompile(`confirmation code is: (\S+)`).FindStringSubmatch(box.last.Body)
	require.Len(t, match, 2)
	return match[1]
}

type testServer struct {
	router http.Handler
	mail   *inbox
	repo   *accounttest.Memory
	tokens *sec.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "yamdb", time.Hour)

	logger := discard()
	repo := accounttest.NewMemory()
	accounts := account.NewService(repo, logger)
	mail := &inbox{}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)
	router := api.Router(ctx, &config.Config{Environment: "development"}, logger, tokens, accounts, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth: auth.NewHandler(auth.NewService(auth.Options{
			Accounts: repo, Registrar: accounts, Tokens: tokens, Mail: mail, Logger: logger,
		})),
		Account: account.NewHandler(accounts),

		// Catalog handlers are covered in their own packages; only their routes are mounted here.
		Reference: reference.NewHandler(nil),
		Title:     title.NewHandler(nil),
		Review:    review.NewHandler(nil),
	})

	return &testServer{router: router, mail: mail, repo: repo, tokens: tokens}
}

func (server *testServer) tokenFor(t *testing.T, user *account.User) string {
	t.Helper()
	token, err := server.tokens.GenerateAccessToken(user.TokenSubject())
	require.NoError(t, err)
	return token
}

func call(router http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestRouter_SignupToProfile(t *testing.T) {
	server := newTestServer(t)
	router, mail := server.router, server.mail

	recorder := call(router, http.MethodPost, "/api/v1/auth/signup", `{"username":"critic","email":"critic@yamdb.test"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	recorder = call(router, http.MethodPost, "/api/v1/auth/token",
		`{"username":"critic","confirmation_code":"`+mail.code(t)+`"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var body struct {
		Data auth.Token `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	recorder = call(router, http.MethodGet, "/api/v1/users/me", "", body.Data.Token)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"username":"critic"`)

	recorder = call(router, http.MethodGet, "/api/v1/users", "", body.Data.Token)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestRouter_Authentication(t *testing.T) {
	router := newTestServer(t).router

	assert.Equal(t, http.StatusUnauthorized, call(router, http.MethodGet, "/api/v1/users/me", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(router, http.MethodGet, "/api/v1/users/me", "", "forged.token.value").Code)
	assert.Equal(t, http.StatusOK, call(router, http.MethodGet, "/health", "", "").Code)
}

func TestRouter_StoredRoleWins(t *testing.T) {
	server := newTestServer(t)
	root := server.repo.Seed("root", "root@yamdb.test", sec.RoleAdmin)
	exadmin := server.repo.Seed("exadmin", "exadmin@yamdb.test", sec.RoleAdmin)

	rootToken, staleToken := server.tokenFor(t, root), server.tokenFor(t, exadmin)

	recorder := call(server.router, http.MethodPatch, "/api/v1/users/exadmin", `{"role":"user"}`, rootToken)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	t.Run("demoted_admin_token_is_forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, call(server.router, http.MethodGet, "/api/v1/users", "", staleToken).Code)
		assert.Equal(t, http.StatusForbidden, call(server.router, http.MethodDelete, "/api/v1/users/root", "", staleToken).Code)

		_, err := server.repo.FindByUsername(context.Background(), "root")
		assert.NoError(t, err)
	})

	t.Run("demoted_admin_sees_stored_role", func(t *testing.T) {
		recorder := call(server.router, http.MethodGet, "/api/v1/users/me", "", staleToken)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"role":"user"`)
	})

	t.Run("deleted_user_token_is_unauthorized", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, call(server.router, http.MethodDelete, "/api/v1/users/exadmin", "", rootToken).Code)

		assert.Equal(t, http.StatusUnauthorized, call(server.router, http.MethodGet, "/api/v1/users/me", "", staleToken).Code)
		assert.Equal(t, http.StatusUnauthorized,
			call(server.router, http.MethodPost, "/api/v1/titles/1/reviews", `{"text":"late","score":5}`, staleToken).Code)
	})
}
