// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access is the authorization policy of the API.

Every service asks this package before it reads or mutates anything. A
decision has two phases:

  - Collection: may the subject perform the action on this kind of resource at all?
  - Object: given a loaded resource, may the subject act on that one?

Callers load the object first so a missing resource reports 404 before a
permission failure reports 403.

# Policy

	Kind               collection                       object
	Catalog            read OR admin                    -
	Authored           read OR authenticated            read OR author OR staff
	UserDirectory      staff                            self OR staff
	UserSelf           authenticated                    self
	UserAdmin          admin                            self OR admin

"staff" means moderator-or-admin. A superuser counts as admin whatever its role.
*/
package access

import (
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Subject

// Subject is the caller of an operation. A nil *Subject is anonymous.
type Subject struct {
	UserID    int64
	Username  string
	Role      sec.UserRole
	Superuser bool
}

// IsAuthenticated reports whether the subject is a signed-in user.
func (s *Subject) IsAuthenticated() bool {
	return s != nil
}

// IsAdmin holds for the admin role or a superuser.
func (s *Subject) IsAdmin() bool {
	return s != nil && sec.IsAdmin(s.Role, s.Superuser)
}

// IsModeratorOrAdmin holds for moderators and admins.
func (s *Subject) IsModeratorOrAdmin() bool {
	return s != nil && sec.IsModeratorOrAdmin(s.Role, s.Superuser)
}

// # Actions & Kinds

// Action is what the subject wants to do.
type Action int

const (
	Read Action = iota
	Create
	Update
	Delete
)

// IsSafe reports whether the action cannot mutate state.
func (a Action) IsSafe() bool {
	return a == Read
}

func (a Action) String() string {
	switch a {
	case Read:
		return "read"
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Kind groups resources that share a rule set.
type Kind int

const (
	// KindCatalog covers categories, genres and titles.
	KindCatalog Kind = iota
	// KindAuthored covers reviews and comments.
	KindAuthored
	// KindUserDirectory is the staff view over all accounts.
	KindUserDirectory
	// KindUserSelf is the caller's own account.
	KindUserSelf
	// KindUserAdmin is the admin account management surface.
	KindUserAdmin
)

// Object carries the ownership facts the object phase needs.
type Object struct {
	AuthorID int64
	Username string
}

// # Decisions

// Allow decides the collection phase.
func Allow(subject *Subject, kind Kind, action Action) bool {
	switch kind {
	case KindCatalog:
		return action.IsSafe() || subject.IsAdmin()
	case KindAuthored:
		return action.IsSafe() || subject.IsAuthenticated()
	case KindUserDirectory:
		return subject.IsModeratorOrAdmin()
	case KindUserSelf:
		return subject.IsAuthenticated()
	case KindUserAdmin:
		return subject.IsAdmin()
	default:
		return false
	}
}

// AllowObject decides the object phase for a loaded resource.
func AllowObject(subject *Subject, kind Kind, action Action, object Object) bool {
	switch kind {
	case KindCatalog:
		return Allow(subject, kind, action)
	case KindAuthored:
		if action.IsSafe() {
			return true
		}
		if subject == nil {
			return false
		}
		return subject.UserID == object.AuthorID || subject.IsModeratorOrAdmin()
	case KindUserDirectory:
		return isSelf(subject, object) || subject.IsModeratorOrAdmin()
	case KindUserSelf:
		return isSelf(subject, object)
	case KindUserAdmin:
		return isSelf(subject, object) || subject.IsAdmin()
	default:
		return false
	}
}

func isSelf(subject *Subject, object Object) bool {
	return subject != nil && object.Username != "" && subject.Username == object.Username
}

// Authorize runs both phases and turns a denial into an API error.
//
// # Returns
//   - nil when allowed
//   - [apperr.Unauthorized] when an anonymous subject is denied
//   - [apperr.Forbidden] when an authenticated subject is denied
func Authorize(subject *Subject, kind Kind, action Action, object *Object) error {
	allowed := Allow(subject, kind, action)
	if allowed && object != nil {
		allowed = AllowObject(subject, kind, action, *object)
	}
	if allowed {
		return nil
	}
	return deny(subject)
}

func deny(subject *Subject) error {
	if subject == nil {
		return ErrAuthenticationRequired
	}
	return ErrPermissionDenied
}

var (
	// ErrAuthenticationRequired is returned to anonymous callers.
	ErrAuthenticationRequired = apperr.Unauthorized("Authentication credentials were not provided")

	// ErrPermissionDenied is returned to signed-in callers lacking privileges.
	ErrPermissionDenied = apperr.Forbidden("You do not have permission to perform this action")
)
