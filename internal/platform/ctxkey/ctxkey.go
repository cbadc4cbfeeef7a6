// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the typed context keys used by middleware and handlers.
//
// The key type is unexported, so values stored here can only be read back
// through this package, never by a colliding string key from another library.
package ctxkey

type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyClaims holds the verified access token claims ([sec.AuthClaims]).
	KeyClaims key = "claims"

	// KeyLogger holds the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
