// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import "context"

// # Title Data Access

// Repository defines the data access contract for titles.
type Repository interface {

	/*
		List returns one page of titles ordered by id, plus the total match count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Title: the page, with rating, genres and category hydrated
		  - int: total rows matching filter
		  - error: database failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error)

	// FindByID returns the hydrated title or a NOT_FOUND error.
	FindByID(context context.Context, id int64) (*Title, error)

	// Create inserts the title with its genre links and sets its ID.
	Create(context context.Context, title *Title) error

	// Update rewrites the title row and replaces its genre links.
	Update(context context.Context, title *Title) error

	// Delete removes a title. Reviews and genre links go with it.
	Delete(context context.Context, id int64) error
}
