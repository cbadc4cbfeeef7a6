// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across the yamdb API.

Categories:

  - Server Timing: HTTP server and shutdown deadlines.
  - Rate Limiting: per-IP token bucket sizing.
  - Authentication: token issuer and the reserved username.
  - Headers: the HTTP header names read by middleware.
  - Catalog Limits: field lengths inherited from the data model.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "yamdb-api"
	AppVersion = "1.0.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds the whole handler chain of one request.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get to finish on shutdown.
	ShutdownTimeout = 30 * time.Second

	// ReadinessTimeout bounds the dependency pings of the /ready probe.
	ReadinessTimeout = 2 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS      = 50.0
	DefaultRateLimitBurst    = 100
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the 'iss' claim of access tokens.
	AuthIssuer = "yamdb"

	// ReservedUsername cannot be registered under any letter case.
	ReservedUsername = "me"
)

// # Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderRetryAfter    = "Retry-After"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Catalog Limits

const (
	MaxNameLength        = 256
	MaxSlugLength        = 50
	MaxDescriptionLength = 256
	MaxUsernameLength    = 150
	MaxEmailLength       = 254
	MaxPersonNameLength  = 150
	MaxBioLength         = 500
	MinScore             = 1
	MaxScore             = 10
)

// # Redis Prefixes

const (
	// RedisPrefixSignupCooldown keys the per-email confirmation mail throttle.
	RedisPrefixSignupCooldown = "auth:signup_cooldown:"
)
