// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the two slug-keyed taxonomies of the catalog.

Categories and genres have the same shape (a display name and a unique slug)
and the same rules, so one repository and one service serve both, selected
by [Kind].

# Core Responsibility

  - Taxonomy: create, look up and remove categories and genres.
  - Resolution: turn slug lists from title payloads into stored entries.

Deleting a category leaves its titles uncategorised; deleting a genre only
removes the genre links. Both effects are enforced by the database.
*/
package reference

// # Domain Enums

// Kind selects which taxonomy an operation targets.
type Kind string

const (
	KindCategory Kind = "category"
	KindGenre    Kind = "genre"
)

// Label is the resource name used in error messages.
func (k Kind) Label() string {
	switch k {
	case KindCategory:
		return "Category"
	case KindGenre:
		return "Genre"
	default:
		return "Reference"
	}
}

// # Entities

// Entry is a single category or genre.
type Entry struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Category and Genre name the two uses of [Entry] at call sites.
type (
	Category = Entry
	Genre    = Entry
)

// # Inputs & Filters

// Input is the create/update payload. Nil fields were not sent.
type Input struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// Filter narrows a listing.
type Filter struct {
	// Search matches names case-insensitively anywhere in the string.
	Search string
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)
