// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/users/auth"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func post(router http.Handler, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_Handshake(t *testing.T) {
	f := newFixture(t)
	router := chi.NewRouter()
	router.Mount("/auth", auth.NewHandler(f.service).Routes())

	recorder := post(router, "/auth/signup", `{"username":"critic","email":"critic@yamdb.test"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.JSONEq(t, `{"data":{"username":"critic","email":"critic@yamdb.test"}}`, recorder.Body.String())

	code := f.outbox.lastCode(t, "critic@yamdb.test")
	assert.NotContains(t, recorder.Body.String(), code)

	recorder = post(router, "/auth/token", `{"username":"critic","confirmation_code":"`+code+`"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var body struct {
		Data auth.Token `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	_, err := f.tokens.VerifyToken(body.Data.Token)
	assert.NoError(t, err)

	cases := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"malformed_json", "/auth/signup", `{"username":`, http.StatusBadRequest},
		{"bad_email", "/auth/signup", `{"username":"other","email":"nope"}`, http.StatusBadRequest},
		{"reused_code", "/auth/token", `{"username":"critic","confirmation_code":"` + code + `"}`, http.StatusBadRequest},
		{"unknown_user", "/auth/token", `{"username":"ghost","confirmation_code":"x"}`, http.StatusNotFound},
		{"missing_code", "/auth/token", `{"username":"critic"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, post(router, tc.target, tc.body).Code)
		})
	}
}
