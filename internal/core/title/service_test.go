// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/access"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

var (
	admin     = &access.Subject{UserID: 1, Username: "root", Role: sec.RoleAdmin}
	moderator = &access.Subject{UserID: 2, Username: "keeper", Role: sec.RoleModerator}
)

func newService(t *testing.T, minYear *int) (*title.Service, *memoryRepository) {
	t.Helper()
	repo := newMemoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return title.NewService(repo, catalog, minYear, logger), repo
}

func validInput() title.Input {
	return title.Input{
		Name:     pointer.To("The Godfather"),
		Year:     pointer.To(1972),
		Genre:    &[]string{"drama"},
		Category: title.OptionalSlug{Set: true, Slug: pointer.To("films")},
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	require.NotEmpty(t, ae.Details)
	return ae.Details[0].Field
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves_references", func(t *testing.T) {
		service, _ := newService(t, nil)
		created, err := service.Create(ctx, admin, validInput())
		require.NoError(t, err)

		assert.NotZero(t, created.ID)
		assert.Nil(t, created.Rating)
		require.Len(t, created.Genre, 1)
		assert.Equal(t, "drama", created.Genre[0].Slug)
		require.NotNil(t, created.Category)
		assert.Equal(t, "films", created.Category.Slug)
	})

	t.Run("no_category", func(t *testing.T) {
		service, _ := newService(t, nil)
		created, err := service.Create(ctx, admin, title.Input{Name: pointer.To("Untitled"), Year: pointer.To(2001)})
		require.NoError(t, err)
		assert.Nil(t, created.Category)
		assert.Empty(t, created.Genre)
	})

	t.Run("unknown_genre", func(t *testing.T) {
		service, _ := newService(t, nil)
		input := validInput()
		input.Genre = &[]string{"drama", "western"}
		_, err := service.Create(ctx, admin, input)
		assert.Equal(t, title.FieldGenre, fieldOf(t, err))
	})

	t.Run("unknown_category", func(t *testing.T) {
		service, _ := newService(t, nil)
		input := validInput()
		input.Category = title.OptionalSlug{Set: true, Slug: pointer.To("games")}
		_, err := service.Create(ctx, admin, input)
		assert.Equal(t, title.FieldCategory, fieldOf(t, err))
	})

	t.Run("future_year", func(t *testing.T) {
		service, _ := newService(t, nil)
		input := validInput()
		input.Year = pointer.To(time.Now().Year() + 1)
		_, err := service.Create(ctx, admin, input)
		assert.Equal(t, title.FieldYear, fieldOf(t, err))
	})

	t.Run("current_year", func(t *testing.T) {
		service, _ := newService(t, nil)
		input := validInput()
		input.Year = pointer.To(time.Now().Year())
		_, err := service.Create(ctx, admin, input)
		assert.NoError(t, err)
	})

	t.Run("below_min_year", func(t *testing.T) {
		service, _ := newService(t, pointer.To(1900))
		input := validInput()
		input.Year = pointer.To(1850)
		_, err := service.Create(ctx, admin, input)
		assert.Equal(t, title.FieldYear, fieldOf(t, err))
	})

	t.Run("ancient_year_without_bound", func(t *testing.T) {
		service, _ := newService(t, nil)
		input := validInput()
		input.Year = pointer.To(-800)
		_, err := service.Create(ctx, admin, input)
		assert.NoError(t, err)
	})

	t.Run("missing_year", func(t *testing.T) {
		service, _ := newService(t, nil)
		input := validInput()
		input.Year = nil
		_, err := service.Create(ctx, admin, input)
		assert.Equal(t, title.FieldYear, fieldOf(t, err))
	})

	t.Run("policy", func(t *testing.T) {
		service, _ := newService(t, nil)

		_, err := service.Create(ctx, nil, validInput())
		assert.ErrorIs(t, err, access.ErrAuthenticationRequired)

		_, err = service.Create(ctx, moderator, validInput())
		assert.ErrorIs(t, err, access.ErrPermissionDenied)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial_keeps_unsent_fields", func(t *testing.T) {
		service, _ := newService(t, nil)
		created, err := service.Create(ctx, admin, validInput())
		require.NoError(t, err)

		updated, err := service.Update(ctx, admin, created.ID, title.Input{Description: pointer.To("A family saga")}, true)
		require.NoError(t, err)
		assert.Equal(t, "The Godfather", updated.Name)
		assert.Equal(t, "A family saga", updated.Description)
		assert.Len(t, updated.Genre, 1)
		assert.NotNil(t, updated.Category)
	})

	t.Run("explicit_null_clears_category", func(t *testing.T) {
		service, _ := newService(t, nil)
		created, err := service.Create(ctx, admin, validInput())
		require.NoError(t, err)

		updated, err := service.Update(ctx, admin, created.ID, title.Input{Category: title.OptionalSlug{Set: true}}, true)
		require.NoError(t, err)
		assert.Nil(t, updated.Category)
	})

	t.Run("replace_requires_name", func(t *testing.T) {
		service, _ := newService(t, nil)
		created, err := service.Create(ctx, admin, validInput())
		require.NoError(t, err)

		_, err = service.Update(ctx, admin, created.ID, title.Input{Year: pointer.To(1972)}, false)
		assert.Equal(t, title.FieldName, fieldOf(t, err))
	})

	t.Run("missing_title", func(t *testing.T) {
		service, _ := newService(t, nil)
		_, err := service.Update(ctx, admin, 404, title.Input{}, true)
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("rating_is_read_back", func(t *testing.T) {
		service, repo := newService(t, nil)
		created, err := service.Create(ctx, admin, validInput())
		require.NoError(t, err)
		repo.ratings[created.ID] = 7.5

		updated, err := service.Update(ctx, admin, created.ID, title.Input{Name: pointer.To("The Godfather Part I")}, true)
		require.NoError(t, err)
		require.NotNil(t, updated.Rating)
		assert.InDelta(t, 7.5, *updated.Rating, 0.001)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t, nil)

	created, err := service.Create(ctx, admin, validInput())
	require.NoError(t, err)

	assert.ErrorIs(t, service.Delete(ctx, moderator, created.ID), access.ErrPermissionDenied)
	require.NoError(t, service.Delete(ctx, admin, created.ID))

	_, err = service.Get(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
