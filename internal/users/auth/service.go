// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/mailer"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

const confirmationSubject = "Confirmation code"

// Service runs the signup and token exchange use cases.
type Service struct {
	accounts  Accounts
	registrar Registrar
	tokens    TokenIssuer
	mail      mailer.Sender
	cooldown  Cooldown
	resend    time.Duration
	logger    *slog.Logger
}

// Options groups the collaborators of [Service].
type Options struct {
	Accounts  Accounts
	Registrar Registrar
	Tokens    TokenIssuer
	Mail      mailer.Sender

	// Cooldown may be nil. A zero Resend also disables throttling.
	Cooldown Cooldown
	Resend   time.Duration

	Logger *slog.Logger
}

// NewService builds the handshake service.
func NewService(options Options) *Service {
	return &Service{
		accounts:  options.Accounts,
		registrar: options.Registrar,
		tokens:    options.Tokens,
		mail:      options.Mail,
		cooldown:  options.Cooldown,
		resend:    options.Resend,
		logger:    options.Logger,
	}
}

/*
Signup registers an account and mails it a fresh confirmation code.

Description: When an account with exactly this username and email exists,
only a new code is issued and the previous one stops working. Otherwise the
account is created with the user role, subject to the usual username and
email rules.

Returns:
  - *SignupInput: the trimmed input, echoed to the client
  - error: validation failure, 429 while the resend cooldown runs, or
    delivery failure
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupInput, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	user, err := service.existing(context, input)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user, err = service.registrar.Register(context, account.Input{
			Username:  pointer.To(input.Username),
			Email:     pointer.To(input.Email),
			FirstName: pointer.To(input.FirstName),
			LastName:  pointer.To(input.LastName),
			Bio:       pointer.To(input.Bio),
		})
		if err != nil {
			return nil, err
		}
	}

	if err := service.issue(context, user); err != nil {
		return nil, err
	}

	return &input, nil
}

// existing returns the account matching both username and email, or nil.
func (service *Service) existing(context context.Context, input SignupInput) (*account.User, error) {
	if input.Username == "" || input.Email == "" {
		return nil, nil
	}

	user, err := service.accounts.FindByUsername(context, input.Username)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if user.Username != input.Username || user.Email != input.Email {
		return nil, nil
	}
	return user, nil
}

// issue stores the digest of a new code and mails the plain code.
// The resend slot is claimed first and released again if delivery fails.
func (service *Service) issue(context context.Context, user *account.User) (err error) {
	if service.cooldown != nil && service.resend > 0 {
		acquired, acquireErr := service.cooldown.Acquire(context, user.Email, service.resend)
		if acquireErr != nil {
			return apperr.Internal(acquireErr)
		}
		if !acquired {
			return apperr.RateLimited(int(math.Ceil(service.resend.Seconds())))
		}
		defer func() {
			if err != nil {
				service.release(context, user)
			}
		}()
	}

	code, err := sec.GenerateConfirmationCode()
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth: generate confirmation code: %w", err))
	}

	if err := service.accounts.SetConfirmationCode(context, user.ID, sec.HashToken(code)); err != nil {
		return err
	}

	message := mailer.Message{
		To:      user.Email,
		Subject: confirmationSubject,
		Body:    fmt.Sprintf("Hello %s,\n\nYour confirmation code is: %s\n", user.Username, code),
	}
	if err := service.mail.Send(context, message); err != nil {
		return apperr.Internal(err)
	}

	service.logger.InfoContext(context, "confirmation_code_issued", slog.Int64("user_id", user.ID))
	return nil
}

func (service *Service) release(ctx context.Context, user *account.User) {
	if err := service.cooldown.Release(context.WithoutCancel(ctx), user.Email); err != nil {
		service.logger.WarnContext(ctx, "signup_cooldown_release_failed",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}

/*
Token exchanges a confirmation code for an access token.

Description: The token is signed before the code is consumed so a signing
failure leaves the code usable. Consumption is a single conditional update;
of several concurrent requests with the same code at most one succeeds.

Returns:
  - *Token: the signed access token
  - error: 400 on missing fields or a wrong or used code, 404 for an
    unknown username
*/
func (service *Service) Token(context context.Context, input TokenInput) (*Token, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.ConfirmationCode = strings.TrimSpace(input.ConfirmationCode)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.accounts.FindByUsername(context, input.Username)
	if err != nil {
		return nil, err
	}

	signed, err := service.tokens.GenerateAccessToken(user.TokenSubject())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	consumed, err := service.accounts.ConsumeConfirmationCode(context, user.ID, sec.HashToken(input.ConfirmationCode))
	if err != nil {
		return nil, err
	}
	if !consumed {
		service.logger.WarnContext(context, "confirmation_code_rejected", slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCode
	}

	service.logger.InfoContext(context, "access_token_issued", slog.Int64("user_id", user.ID))
	return &Token{Token: signed}, nil
}
