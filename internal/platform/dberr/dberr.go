// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates PostgreSQL driver errors into application errors.
//
// Repositories call [Wrap] on every query error. Constraint violations are
// recognised by SQLSTATE so services can react to them (the one-review-per-
// author rule relies on [IsUniqueViolation]).
package dberr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// ErrNotFound is returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap classifies a database error.
//
// # Mapping
//
//   - [pgx.ErrNoRows] → [ErrNotFound]
//   - unique violation (23505) → validation error naming the constraint
//   - foreign key violation (23503) → validation error on the referenced resource
//   - anything else → [apperr.Internal] with the raw cause kept for logging
//
// The action string is kept in the internal cause for log correlation.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	if pgErr, ok := asPgError(err); ok {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return &apperr.AppError{
				Code:       apperr.CodeValidation,
				Message:    "Resource already exists",
				HTTPStatus: http.StatusBadRequest,
				Cause:      err,
				Details:    []apperr.FieldError{{Field: pgErr.ConstraintName, Message: "must be unique"}},
			}
		case pgerrcode.ForeignKeyViolation:
			return &apperr.AppError{
				Code:       apperr.CodeValidation,
				Message:    "Referenced resource does not exist",
				HTTPStatus: http.StatusBadRequest,
				Cause:      err,
			}
		}
	}

	return apperr.Internal(&actionError{action: action, err: err})
}

// IsUniqueViolation reports whether err comes from a unique constraint.
// A non-empty constraint narrows the match to that constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	pgErr, ok := asPgError(err)
	if !ok || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err comes from a foreign key constraint.
// A non-empty constraint narrows the match to that constraint name.
func IsForeignKeyViolation(err error, constraint string) bool {
	pgErr, ok := asPgError(err)
	if !ok || pgErr.Code != pgerrcode.ForeignKeyViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string { return e.action + ": " + e.err.Error() }
func (e *actionError) Unwrap() error { return e.err }
