// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/mailer"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/account/accounttest"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

var codePattern = regexp.MustCompile(`confirmation code is: (\S+)`)

// outbox records every message instead of sending it.
type outbox struct {
	mu       sync.Mutex
	messages []mailer.Message
	fail     error
}

func (box *outbox) Send(_ context.Context, message mailer.Message) error {
	box.mu.Lock()
	defer box.mu.Unlock()
	if box.fail != nil {
		return box.fail
	}
	box.messages = append(box.messages, message)
	return nil
}

func (box *outbox) failWith(err error) {
	box.mu.Lock()
	defer box.mu.Unlock()
	box.fail = err
}

func (box *outbox) lastCode(t *testing.T, to string) string {
	t.Helper()
	box.mu.Lock()
	defer box.mu.Unlock()
	for i := len(box.messages) - 1; i >= 0; i-- {
		if strings.EqualFold(box.messages[i].To, to) {
			match := codePattern.FindStringSubmatch(box.messages[i].Body)
			require.Len(t, match, 2)
			return match[1]
		}
	}
	t.Fatalf("no mail sent to %s", to)
	return ""
}

func (box *outbox) count() int {
	box.mu.Lock()
	defer box.mu.Unlock()
	return len(box.messages)
}

// memoryCooldown mimics SET NX with a TTL against a fixed clock.
type memoryCooldown struct {
	mu    sync.Mutex
	now   time.Time
	until map[string]time.Time
}

func (cooldown *memoryCooldown) Acquire(_ context.Context, email string, ttl time.Duration) (bool, error) {
	cooldown.mu.Lock()
	defer cooldown.mu.Unlock()
	key := strings.ToLower(email)
	if cooldown.now.Before(cooldown.until[key]) {
		return false, nil
	}
	cooldown.until[key] = cooldown.now.Add(ttl)
	return true, nil
}

func (cooldown *memoryCooldown) Release(_ context.Context, email string) error {
	cooldown.mu.Lock()
	defer cooldown.mu.Unlock()
	delete(cooldown.until, strings.ToLower(email))
	return nil
}

// brokenIssuer fails every signing attempt.
type brokenIssuer struct{}

func (brokenIssuer) GenerateAccessToken(sec.TokenSubject) (string, error) {
	return "", errors.New("signing key unavailable")
}

type fixture struct {
	service  *auth.Service
	repo     *accounttest.Memory
	outbox   *outbox
	tokens   *sec.TokenService
	cooldown *memoryCooldown
}

type fixtureOption func(*auth.Options)

func withResend(d time.Duration) fixtureOption {
	return func(options *auth.Options) { options.Resend = d }
}

func newFixture(t *testing.T, opts ...fixtureOption) fixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := accounttest.NewMemory()
	f := fixture{
		repo:     repo,
		outbox:   &outbox{},
		tokens:   sec.NewTokenServiceFromKeys(key, &key.PublicKey, "yamdb", time.Hour),
		cooldown: &memoryCooldown{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), until: map[string]time.Time{}},
	}

	options := auth.Options{
		Accounts:  repo,
		Registrar: account.NewService(repo, logger),
		Tokens:    f.tokens,
		Mail:      f.outbox,
		Cooldown:  f.cooldown,
		Logger:    logger,
	}
	for _, opt := range opts {
		opt(&options)
	}

	f.service = auth.NewService(options)
	return f
}
