// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the passwordless signup handshake.

# Flow

 1. POST /auth/signup registers the account (or finds the existing one with
    the same username and email) and mails a one-time confirmation code.
 2. POST /auth/token exchanges username plus code for an access token. The
    code is cleared by the same statement that checks it, so it can be used
    exactly once even under concurrent requests.

Codes are only persisted as a BLAKE2b digest (see [sec.HashToken]).
*/
package auth

import (
	"context"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
)

// # Contracts

// Accounts is the slice of the account store the handshake needs.
type Accounts interface {
	FindByUsername(context context.Context, username string) (*account.User, error)
	SetConfirmationCode(context context.Context, id int64, digest string) error
	ConsumeConfirmationCode(context context.Context, id int64, digest string) (bool, error)
}

// Registrar creates self-registered accounts. Implemented by [account.Service].
type Registrar interface {
	Register(context context.Context, input account.Input) (*account.User, error)
}

// TokenIssuer signs access tokens. Implemented by [sec.TokenService].
type TokenIssuer interface {
	GenerateAccessToken(subject sec.TokenSubject) (string, error)
}

// Cooldown throttles confirmation mails per address.
type Cooldown interface {
	// Acquire reports false when a mail to email was already sent within ttl.
	Acquire(context context.Context, email string, ttl time.Duration) (bool, error)

	// Release frees the slot of email after a failed delivery.
	Release(context context.Context, email string) error
}

// # Payloads

// SignupInput is the signup payload. It is echoed back on success.
type SignupInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// TokenInput is the token exchange payload.
type TokenInput struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// Token is the token exchange response.
type Token struct {
	Token string `json:"token"`
}

// # Field Identifiers

const (
	FieldUsername         = "username"
	FieldConfirmationCode = "confirmation_code"
)

// ErrInvalidCode is returned when the code does not match or was already used.
var ErrInvalidCode = apperr.Invalid(FieldConfirmationCode, "invalid confirmation code")
