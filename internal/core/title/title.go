// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the reviewable works of the catalog.

A title belongs to at most one category and to any number of genres. Both are
referenced by slug in payloads and embedded as objects in responses.

# Core Responsibility

  - Catalog: create, update, filter and remove titles.
  - Rating: the mean review score, computed on every read and never stored.
*/
package title

import (
	"encoding/json"

	"github.com/taibuivan/yamdb/internal/core/reference"
)

// # Entities

// Title is a single work as returned by the API.
type Title struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Year        int                 `json:"year"`
	Rating      *float64            `json:"rating"`
	Description string              `json:"description"`
	Genre       []*reference.Genre  `json:"genre"`
	Category    *reference.Category `json:"category"`
}

// GenreIDs lists the ids of the linked genres.
func (title *Title) GenreIDs() []int64 {
	ids := make([]int64, 0, len(title.Genre))
	for _, genre := range title.Genre {
		ids = append(ids, genre.ID)
	}
	return ids
}

// CategoryID returns the linked category id, or nil when uncategorised.
func (title *Title) CategoryID() *int64 {
	if title.Category == nil {
		return nil
	}
	return &title.Category.ID
}

// # Inputs & Filters

// Input is the create/update payload. Nil fields were not sent.
type Input struct {
	Name        *string      `json:"name"`
	Year        *int         `json:"year"`
	Description *string      `json:"description"`
	Genre       *[]string    `json:"genre"`
	Category    OptionalSlug `json:"category"`
}

// OptionalSlug tells an absent field apart from an explicit null.
type OptionalSlug struct {
	Set  bool
	Slug *string
}

// UnmarshalJSON records that the field was present, even when it is null.
func (optional *OptionalSlug) UnmarshalJSON(data []byte) error {
	optional.Set = true
	if string(data) == "null" {
		optional.Slug = nil
		return nil
	}

	var slug string
	if err := json.Unmarshal(data, &slug); err != nil {
		return err
	}
	optional.Slug = &slug
	return nil
}

// Filter narrows a title listing. Zero values do not filter.
type Filter struct {
	// Name matches case-insensitively anywhere in the title name.
	Name     string
	Year     *int
	Genre    string
	Category string
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldCategory    = "category"
)
