// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/access"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pointer"
	"github.com/taibuivan/yamdb/pkg/slice"
)

// SlugResolver turns category and genre slugs into stored entries.
// [reference.Service] satisfies it.
type SlugResolver interface {
	FindBySlugs(context context.Context, kind reference.Kind, slugs []string) ([]*reference.Entry, error)
}

// # Service Layer

// Service implements the title use cases.
type Service struct {
	repo       Repository
	references SlugResolver
	minYear    *int
	now        func() time.Time
	logger     *slog.Logger
}

// NewService constructs a new [Service]. A nil minYear leaves the year unbounded below.
func NewService(repo Repository, references SlugResolver, minYear *int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		references: references,
		minYear:    minYear,
		now:        time.Now,
		logger:     logger,
	}
}

// # Lookups

// List returns a filtered page of titles. Reading the catalog needs no privileges.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	return service.repo.List(context, filter, limit, offset)
}

// Get returns one title with its current rating.
func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repo.FindByID(context, id)
}

// # Management

/*
Create adds a title.

Description: Only admins may write to the catalog. Name and year are
required; genre and category are given as slugs that must already exist.

Parameters:
  - context: context.Context
  - subject: *access.Subject (nil for anonymous)
  - input: Input

Returns:
  - *Title: the stored title, rating null
  - error: 401/403 from the policy, VALIDATION_ERROR for bad fields or unknown slugs
*/
func (service *Service) Create(context context.Context, subject *access.Subject, input Input) (*Title, error) {
	if err := access.Authorize(subject, access.KindCatalog, access.Create, nil); err != nil {
		return nil, err
	}

	title := &Title{Genre: []*reference.Genre{}}
	if err := service.apply(context, title, input, false); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, title); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "title_created",
		slog.Int64("title_id", title.ID),
		slog.Int64("actor_id", subject.UserID),
	)

	return title, nil
}

/*
Update changes a title.

Description: With partial set (PATCH) only the sent fields change. Without it
(PUT) name and year are required and omitted genre or category are cleared.
The returned title is read back so the rating is current.
*/
func (service *Service) Update(context context.Context, subject *access.Subject, id int64, input Input, partial bool) (*Title, error) {
	if err := access.Authorize(subject, access.KindCatalog, access.Update, nil); err != nil {
		return nil, err
	}

	title, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.apply(context, title, input, partial); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, title); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "title_updated",
		slog.Int64("title_id", title.ID),
		slog.Int64("actor_id", subject.UserID),
	)

	return service.repo.FindByID(context, id)
}

// Delete removes a title together with its reviews and their comments.
func (service *Service) Delete(context context.Context, subject *access.Subject, id int64) error {
	if err := access.Authorize(subject, access.KindCatalog, access.Delete, nil); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "title_deleted",
		slog.Int64("title_id", id),
		slog.Int64("actor_id", subject.UserID),
	)

	return nil
}

// # Validation

// apply validates input, resolves slugs and copies the result onto title.
func (service *Service) apply(context context.Context, title *Title, input Input, partial bool) error {
	validator := &validate.Validator{}

	if input.Name != nil || !partial {
		name := strings.TrimSpace(pointer.Val(input.Name))
		validator.Required(FieldName, name).MaxLen(FieldName, name, constants.MaxNameLength)
		title.Name = name
	}

	switch {
	case input.Year != nil:
		validator.Year(FieldYear, *input.Year, service.now(), service.minYear)
		title.Year = *input.Year
	case !partial:
		validator.Custom(FieldYear, true, "This field is required")
	}

	if input.Description != nil || !partial {
		title.Description = strings.TrimSpace(pointer.Val(input.Description))
		validator.MaxLen(FieldDescription, title.Description, constants.MaxDescriptionLength)
	}

	if input.Genre != nil || !partial {
		genres, err := service.resolve(context, validator, reference.KindGenre, FieldGenre, pointer.Val(input.Genre))
		if err != nil {
			return err
		}
		title.Genre = genres
	}

	if input.Category.Set || !partial {
		title.Category = nil
		if input.Category.Slug != nil {
			categories, err := service.resolve(context, validator, reference.KindCategory, FieldCategory, []string{*input.Category.Slug})
			if err != nil {
				return err
			}
			if len(categories) == 1 {
				title.Category = categories[0]
			}
		}
	}

	return validator.Err()
}

// resolve looks up every slug and records the unknown ones on field.
func (service *Service) resolve(context context.Context, validator *validate.Validator, kind reference.Kind, field string, slugs []string) ([]*reference.Entry, error) {
	slugs = slice.Unique(slice.Map(slugs, strings.TrimSpace))
	if len(slugs) == 0 {
		return []*reference.Entry{}, nil
	}

	entries, err := service.references.FindBySlugs(context, kind, slugs)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(entries))
	for _, entry := range entries {
		known[entry.Slug] = true
	}
	for _, slug := range slice.Filter(slugs, func(slug string) bool { return !known[slug] }) {
		validator.Custom(field, true, fmt.Sprintf("Object with slug=%s does not exist", slug))
	}

	return entries, nil
}
