// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// TokenVerifier verifies a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// IdentityLoader returns the stored identity of a token's user.
// A deleted user yields a NOT_FOUND error.
type IdentityLoader interface {
	Identity(context context.Context, userID int64) (sec.TokenSubject, error)
}

// Authenticate resolves the caller's identity from the Authorization header.
//
// # Flow
//  1. No header: the request continues anonymously.
//  2. Header present: it must be "Bearer <token>" and the token must verify.
//  3. The user is reloaded by id. Username, role and superuser come from the
//     stored row, so demotions apply to tokens already issued. A deleted user
//     is rejected with 401.
//  4. The refreshed claims are stored with [ctxutil.WithClaims].
//
// Authorization itself happens in the services, through the access package.
func Authenticate(verifier TokenVerifier, identities IdentityLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			stored, err := identities.Identity(request.Context(), claims.UserID)
			if err != nil {
				if apperr.HasCode(err, apperr.CodeNotFound) {
					err = apperr.Unauthorized("User no longer exists")
				}
				respond.Error(writer, request, err)
				return
			}

			current := *claims
			current.Username, current.Role, current.Superuser = stored.Username, stored.Role, stored.Superuser

			recordIdentity(request.Context(), current.UserID)
			ctx := ctxutil.WithClaims(request.Context(), &current)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
