// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/access"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pointer"
	"github.com/taibuivan/yamdb/pkg/slug"
)

// # Service Layer

// Service implements the category and genre use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Lookups

// List returns a page of entries. Reading the catalog needs no privileges.
func (service *Service) List(context context.Context, kind Kind, filter Filter, limit, offset int) ([]*Entry, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return service.repo.List(context, kind, filter, limit, offset)
}

// Get returns one entry by slug.
func (service *Service) Get(context context.Context, kind Kind, identifier string) (*Entry, error) {
	return service.repo.FindBySlug(context, kind, identifier)
}

// FindBySlugs resolves slugs for other catalog services. Unknown slugs are skipped.
func (service *Service) FindBySlugs(context context.Context, kind Kind, slugs []string) ([]*Entry, error) {
	return service.repo.FindBySlugs(context, kind, slugs)
}

// # Management

/*
Create adds a category or genre.

Description: Only admins may write to the catalog. The name is required;
when no slug is sent one is derived from the name.

Parameters:
  - context: context.Context
  - subject: *access.Subject (nil for anonymous)
  - kind: Kind
  - input: Input

Returns:
  - *Entry: the stored entry
  - error: 401/403 from the policy, VALIDATION_ERROR for bad or duplicate fields
*/
func (service *Service) Create(context context.Context, subject *access.Subject, kind Kind, input Input) (*Entry, error) {
	if err := access.Authorize(subject, access.KindCatalog, access.Create, nil); err != nil {
		return nil, err
	}

	entry := &Entry{}
	if err := build(entry, input); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, kind, entry); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, string(kind)+"_created",
		slog.String("slug", entry.Slug),
		slog.Int64("actor_id", subject.UserID),
	)

	return entry, nil
}

/*
Update renames an entry.

Description: The slug is the entry's identity and never changes after
creation. A slug equal to the stored one is accepted so clients may send the
entry back as read; any other slug is a validation error. Without partial
(PUT) the name is required.
*/
func (service *Service) Update(context context.Context, subject *access.Subject, kind Kind, identifier string, input Input, partial bool) (*Entry, error) {
	if err := access.Authorize(subject, access.KindCatalog, access.Update, nil); err != nil {
		return nil, err
	}

	entry, err := service.repo.FindBySlug(context, kind, identifier)
	if err != nil {
		return nil, err
	}

	if err := rename(entry, input, partial); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, kind, entry); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, string(kind)+"_updated",
		slog.String("slug", entry.Slug),
		slog.Int64("actor_id", subject.UserID),
	)

	return entry, nil
}

// Delete removes an entry.
func (service *Service) Delete(context context.Context, subject *access.Subject, kind Kind, identifier string) error {
	if err := access.Authorize(subject, access.KindCatalog, access.Delete, nil); err != nil {
		return err
	}

	if err := service.repo.Delete(context, kind, identifier); err != nil {
		return err
	}

	service.logger.InfoContext(context, string(kind)+"_deleted",
		slog.String("slug", identifier),
		slog.Int64("actor_id", subject.UserID),
	)

	return nil
}

// build validates input for a new entry. A missing slug is derived from the name.
func build(entry *Entry, input Input) error {
	validator := &validate.Validator{}
	entry.Name = validName(validator, input.Name)

	if raw := strings.TrimSpace(pointer.Val(input.Slug)); raw != "" {
		entry.Slug = raw
		validator.Slug(FieldSlug, entry.Slug)
	} else {
		entry.Slug = slug.From(entry.Name)
		if entry.Slug == "" && !validator.HasFieldError(FieldName) {
			validator.Custom(FieldSlug, true, "A slug is required when the name has no latin letters or digits")
		}
	}

	return validator.Err()
}

// rename validates an update. Only the name is writable.
func rename(entry *Entry, input Input, partial bool) error {
	validator := &validate.Validator{}

	if input.Name != nil || !partial {
		entry.Name = validName(validator, input.Name)
	}
	if input.Slug != nil {
		validator.Custom(FieldSlug, strings.TrimSpace(*input.Slug) != entry.Slug, "The slug cannot be changed")
	}

	return validator.Err()
}

func validName(validator *validate.Validator, raw *string) string {
	value := strings.TrimSpace(pointer.Val(raw))
	validator.Required(FieldName, value).MaxLen(FieldName, value, constants.MaxNameLength)
	return value
}
