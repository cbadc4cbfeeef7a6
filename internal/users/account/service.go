// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/access"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pointer"
	"github.com/taibuivan/yamdb/pkg/slice"
)

// # Service Layer

// Service implements the account use cases for all three surfaces.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Directory & Admin

/*
List returns a page of accounts.

Parameters:
  - context: context.Context
  - subject: *access.Subject
  - surface: access.KindUserAdmin or access.KindUserDirectory
  - filter: Filter
  - limit, offset: int

Returns:
  - []*User, int: the page and the total
  - error: 401/403 when the surface is closed to the subject
*/
func (service *Service) List(context context.Context, subject *access.Subject, surface access.Kind, filter Filter, limit, offset int) ([]*User, int, error) {
	if err := access.Authorize(subject, surface, access.Read, nil); err != nil {
		return nil, 0, err
	}

	filter.Search = strings.TrimSpace(filter.Search)
	return service.repo.List(context, filter, limit, offset)
}

// Get returns one account by username.
func (service *Service) Get(context context.Context, subject *access.Subject, surface access.Kind, username string) (*User, error) {
	return service.load(context, subject, surface, access.Read, username)
}

/*
Create registers an account on behalf of an admin.

Description: Unlike signup, any role may be assigned and no confirmation
code is issued. The new user obtains one through signup with the same
username and email.
*/
func (service *Service) Create(context context.Context, subject *access.Subject, input Input) (*User, error) {
	if err := access.Authorize(subject, access.KindUserAdmin, access.Create, nil); err != nil {
		return nil, err
	}

	user := &User{Role: sec.RoleUser}
	if err := service.apply(context, user, input, false, true); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_created",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
		slog.Int64("actor_id", subject.UserID),
	)

	return user, nil
}

/*
Register creates a self-registered account during signup.

Description: No policy applies. The role is always user and any role in
input is ignored.
*/
func (service *Service) Register(context context.Context, input Input) (*User, error) {
	input.Role = nil

	user := &User{Role: sec.RoleUser}
	if err := service.apply(context, user, input, false, false); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

/*
Update changes an account through the admin or directory surface.

Description: The target is loaded before the object check so a missing
account reports 404 before a denial reports 403. A role in the payload is
dropped unless the subject is an admin.
*/
func (service *Service) Update(context context.Context, subject *access.Subject, surface access.Kind, username string, input Input, partial bool) (*User, error) {
	user, err := service.load(context, subject, surface, access.Update, username)
	if err != nil {
		return nil, err
	}

	if !subject.IsAdmin() {
		input.Role = nil
	}

	if err := service.apply(context, user, input, partial, true); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_updated",
		slog.String("username", user.Username),
		slog.Int64("actor_id", subject.UserID),
	)

	return user, nil
}

// Delete removes an account. Admin only.
func (service *Service) Delete(context context.Context, subject *access.Subject, username string) error {
	user, err := service.load(context, subject, access.KindUserAdmin, access.Delete, username)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, user.ID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "user_deleted",
		slog.String("username", user.Username),
		slog.Int64("actor_id", subject.UserID),
	)

	return nil
}

// # Self Service

// Me returns the caller's own account.
func (service *Service) Me(context context.Context, subject *access.Subject) (*User, error) {
	if err := access.Authorize(subject, access.KindUserSelf, access.Read, nil); err != nil {
		return nil, err
	}
	return service.repo.FindByID(context, subject.UserID)
}

/*
UpdateMe applies a partial update to the caller's own account.

Description: The role field is dropped before validation, so a user can
never change their own role here, not even an admin.
*/
func (service *Service) UpdateMe(context context.Context, subject *access.Subject, input Input) (*User, error) {
	if err := access.Authorize(subject, access.KindUserSelf, access.Update, nil); err != nil {
		return nil, err
	}

	user, err := service.repo.FindByID(context, subject.UserID)
	if err != nil {
		return nil, err
	}

	input.Role = nil
	if err := service.apply(context, user, input, true, false); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_profile_updated", slog.Int64("user_id", user.ID))

	return user, nil
}

// Identity returns the stored identity of userID for request authentication.
func (service *Service) Identity(context context.Context, userID int64) (sec.TokenSubject, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return sec.TokenSubject{}, err
	}
	return user.TokenSubject(), nil
}

// # Operator Tasks

// Promote sets role and superuser flag directly. It is meant for the CLI and skips the policy.
func (service *Service) Promote(context context.Context, username string, role sec.UserRole, superuser bool) (*User, error) {
	if !role.IsValid() {
		return nil, invalidRole(role)
	}

	user, err := service.repo.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	user.Role, user.IsSuperuser = role, superuser
	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_promoted",
		slog.String("username", user.Username),
		slog.String("role", string(role)),
		slog.Bool("superuser", superuser),
	)

	return user, nil
}

// # Helpers

// load authorizes the surface, fetches the target, then authorizes the object.
func (service *Service) load(context context.Context, subject *access.Subject, surface access.Kind, action access.Action, username string) (*User, error) {
	if err := access.Authorize(subject, surface, action, nil); err != nil {
		return nil, err
	}

	user, err := service.repo.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if err := access.Authorize(subject, surface, action, &access.Object{Username: user.Username}); err != nil {
		return nil, err
	}

	return user, nil
}

// apply validates input and copies it onto user. Without partial, username and email are required.
func (service *Service) apply(context context.Context, user *User, input Input, partial, allowRole bool) error {
	validator := &validate.Validator{}

	if input.Username != nil || !partial {
		username := strings.TrimSpace(pointer.Val(input.Username))
		validator.Username(FieldUsername, username)
		if !validator.HasFieldError(FieldUsername) {
			taken, err := service.repo.UsernameTaken(context, username, user.ID)
			if err != nil {
				return err
			}
			validator.Custom(FieldUsername, taken, "A user with this username already exists")
		}
		user.Username = username
	}

	if input.Email != nil || !partial {
		email := strings.TrimSpace(pointer.Val(input.Email))
		validator.Email(FieldEmail, email)
		if !validator.HasFieldError(FieldEmail) {
			taken, err := service.repo.EmailTaken(context, email, user.ID)
			if err != nil {
				return err
			}
			validator.Custom(FieldEmail, taken, "A user with this email already exists")
		}
		user.Email = email
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
		validator.MaxLen(FieldFirstName, user.FirstName, constants.MaxPersonNameLength)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
		validator.MaxLen(FieldLastName, user.LastName, constants.MaxPersonNameLength)
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
		validator.MaxLen(FieldBio, user.Bio, constants.MaxBioLength)
	}

	if allowRole && input.Role != nil {
		validator.OneOf(FieldRole, string(*input.Role), roleChoices...)
		if input.Role.IsValid() {
			user.Role = *input.Role
		}
	}

	return validator.Err()
}

// roleChoices are the accepted values of the role field.
var roleChoices = slice.Map(sec.Roles, func(role sec.UserRole) string { return string(role) })

func invalidRole(role sec.UserRole) error {
	validator := &validate.Validator{}
	return validator.OneOf(FieldRole, string(role), roleChoices...).Err()
}
