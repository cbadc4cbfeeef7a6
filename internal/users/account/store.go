// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import "context"

// # Account Data Access

// Repository defines the persistence contract for user accounts.
type Repository interface {

	/*
		List returns one page of users ordered by username, plus the total match count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*User: the page
		  - int: total rows matching filter
		  - error: database failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*User, int, error)

	// FindByID returns the account or a NOT_FOUND error.
	FindByID(context context.Context, id int64) (*User, error)

	// FindByUsername matches the username case-insensitively.
	FindByUsername(context context.Context, username string) (*User, error)

	// UsernameTaken reports whether another account (not exceptID) holds username in any case.
	UsernameTaken(context context.Context, username string, exceptID int64) (bool, error)

	// EmailTaken reports whether another account (not exceptID) holds email in any case.
	EmailTaken(context context.Context, email string, exceptID int64) (bool, error)

	// Create inserts user and sets ID and timestamps.
	// A username or email clash is a validation error on that field.
	Create(context context.Context, user *User) error

	// Update rewrites the profile and role of user.
	Update(context context.Context, user *User) error

	// Delete removes the account. Its reviews and comments cascade.
	Delete(context context.Context, id int64) error

	/*
		SetConfirmationCode stores the digest of a freshly issued code.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - digest: string (hex BLAKE2b-256 of the code)
	*/
	SetConfirmationCode(context context.Context, id int64, digest string) error

	/*
		ConsumeConfirmationCode clears the stored digest if it equals digest.

		Description: One conditional UPDATE. Of several concurrent callers with
		the same code, exactly one sees true.

		Returns:
		  - bool: true when the code matched and was cleared
		  - error: database failures
	*/
	ConsumeConfirmationCode(context context.Context, id int64, digest string) (bool, error)
}
