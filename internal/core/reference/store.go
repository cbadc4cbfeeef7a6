// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// # Reference Data Access

// Repository defines the data access contract for categories and genres.
type Repository interface {

	/*
		List returns one page of entries ordered by name, plus the total match count.

		Parameters:
		  - context: context.Context
		  - kind: Kind (category or genre)
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Entry: the page
		  - int: total rows matching filter
		  - error: database failures
	*/
	List(context context.Context, kind Kind, filter Filter, limit, offset int) ([]*Entry, int, error)

	// FindBySlug returns the entry or a NOT_FOUND error.
	FindBySlug(context context.Context, kind Kind, slug string) (*Entry, error)

	// FindBySlugs returns the entries whose slug is listed. Unknown slugs are skipped.
	FindBySlugs(context context.Context, kind Kind, slugs []string) ([]*Entry, error)

	// Create inserts entry and sets its ID. A taken slug is a validation error on "slug".
	Create(context context.Context, kind Kind, entry *Entry) error

	// Update rewrites the name of the entry stored under entry.Slug.
	Update(context context.Context, kind Kind, entry *Entry) error

	// Delete removes the entry stored under slug.
	Delete(context context.Context, kind Kind, slug string) error
}
