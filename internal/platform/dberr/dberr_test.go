// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, dberr.Wrap(nil, "noop"))
	})

	t.Run("no_rows", func(t *testing.T) {
		err := dberr.Wrap(pgx.ErrNoRows, "get_title")
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("unique_violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "category_slug_key"}
		ae := apperr.As(dberr.Wrap(pgErr, "create_category"))
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
		require.Len(t, ae.Details, 1)
		assert.Equal(t, "category_slug_key", ae.Details[0].Field)
	})

	t.Run("unknown", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := dberr.Wrap(cause, "list_titles")
		assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
		assert.ErrorIs(t, err, cause)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "review_title_author_key"}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	assert.True(t, dberr.IsUniqueViolation(wrapped, ""))
	assert.True(t, dberr.IsUniqueViolation(wrapped, "review_title_author_key"))
	assert.False(t, dberr.IsUniqueViolation(wrapped, "account_email_key"))
	assert.False(t, dberr.IsUniqueViolation(errors.New("plain"), ""))

	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "review_author_fkey"}
	assert.True(t, dberr.IsForeignKeyViolation(fk, ""))
	assert.True(t, dberr.IsForeignKeyViolation(fk, "review_author_fkey"))
	assert.False(t, dberr.IsForeignKeyViolation(fk, "review_title_fkey"))
	assert.False(t, dberr.IsForeignKeyViolation(pgErr, ""))
}
