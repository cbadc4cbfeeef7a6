// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages user records and the three surfaces that expose them.

# Surfaces

  - Admin (/users): full management of every account, including roles.
  - Directory (/moderation/users): staff may browse and edit accounts. Only an
    admin may change a role through it.
  - Self (/users/me): any signed-in user reads and edits their own profile.
    A role in the payload is dropped.

Usernames and emails are unique regardless of letter case.
*/
package account

import (
	"time"

	"github.com/taibuivan/yamdb/internal/platform/access"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Domain Entities

// User is a registered account.
type User struct {
	ID          int64        `json:"-"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Bio         string       `json:"bio"`
	Role        sec.UserRole `json:"role"`
	IsSuperuser bool         `json:"-"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}

// Subject returns the user as an authorization subject.
func (user *User) Subject() *access.Subject {
	return &access.Subject{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Superuser: user.IsSuperuser,
	}
}

// TokenSubject returns the identity an access token is minted for.
func (user *User) TokenSubject() sec.TokenSubject {
	return sec.TokenSubject{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Superuser: user.IsSuperuser,
	}
}

// # Inputs & Filters

// Input is the create/update payload. Nil fields were not sent.
type Input struct {
	Username  *string       `json:"username"`
	Email     *string       `json:"email"`
	FirstName *string       `json:"first_name"`
	LastName  *string       `json:"last_name"`
	Bio       *string       `json:"bio"`
	Role      *sec.UserRole `json:"role"`
}

// Filter narrows a user listing.
type Filter struct {
	// Search matches usernames case-insensitively anywhere in the string.
	Search string
}

// # Field Identifiers

const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBio       = "bio"
	FieldRole      = "role"
)
