// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	accountTable = schema.UserAccount

	// Unique index names from the migrations, mapped to the payload field they guard.
	uniqueFields = map[string]string{
		"account_username_key": FieldUsername,
		"account_email_key":    FieldEmail,
	}
)

func scanUser(row pgx.Row, extra ...any) (*User, error) {
	user := &User{}
	destinations := append([]any{
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.Bio, &user.Role, &user.IsSuperuser, &user.CreatedAt, &user.UpdatedAt,
	}, extra...)
	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}
	return user, nil
}

/*
List returns a page of accounts with the total count.

Description: The optional username search is an escaped ILIKE built with
squirrel. COUNT(*) OVER() returns the total alongside the page.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*User, int, error) {
	builder := postgres.SQL.
		Select(append(accountTable.Columns(), "COUNT(*) OVER() AS total")...).
		From(accountTable.Table).
		OrderBy(accountTable.Username+" ASC", accountTable.ID+" ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if filter.Search != "" {
		builder = builder.Where(sq.ILike{accountTable.Username: postgres.Contains(filter.Search)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, apperr.Internal(fmt.Errorf("build_list_users: %w", err))
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	total := 0
	for rows.Next() {
		user, err := scanUser(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}

	if len(users) == 0 && offset > 0 {
		count := postgres.SQL.Select("COUNT(*)").From(accountTable.Table)
		if filter.Search != "" {
			count = count.Where(sq.ILike{accountTable.Username: postgres.Contains(filter.Search)})
		}
		query, args, err := count.ToSql()
		if err != nil {
			return nil, 0, apperr.Internal(err)
		}
		if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_users")
		}
	}

	return users, total, nil
}

// FindByID performs a direct primary key lookup.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(accountTable.Columns(), ", "), accountTable.Table, accountTable.ID)

	user, err := scanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_user")
	}
	return user, nil
}

// FindByUsername uses the lower(username) unique index.
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1)`,
		strings.Join(accountTable.Columns(), ", "), accountTable.Table, accountTable.Username)

	user, err := scanUser(repository.db.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_user")
	}
	return user, nil
}

// UsernameTaken checks the username case-insensitively.
func (repository *PostgresRepository) UsernameTaken(context context.Context, username string, exceptID int64) (bool, error) {
	return repository.taken(context, accountTable.Username, username, exceptID)
}

// EmailTaken checks the email case-insensitively.
func (repository *PostgresRepository) EmailTaken(context context.Context, email string, exceptID int64) (bool, error) {
	return repository.taken(context, accountTable.Email, email, exceptID)
}

func (repository *PostgresRepository) taken(context context.Context, column, value string, exceptID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE lower(%s) = lower($1) AND %s <> $2)`,
		accountTable.Table, column, accountTable.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, value, exceptID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_"+column)
	}
	return exists, nil
}

// Create inserts a new account and hydrates identity and timestamps.
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s
	`,
		accountTable.Table,
		accountTable.Username, accountTable.Email, accountTable.FirstName, accountTable.LastName,
		accountTable.Bio, accountTable.Role, accountTable.IsSuperuser,
		accountTable.ID, accountTable.CreatedAt, accountTable.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role, user.IsSuperuser,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	return translate(err, "create_user")
}

// Update rewrites every mutable column and bumps updatedat.
func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = now()
		WHERE %s = $8
		RETURNING %s
	`,
		accountTable.Table,
		accountTable.Username, accountTable.Email, accountTable.FirstName, accountTable.LastName,
		accountTable.Bio, accountTable.Role, accountTable.IsSuperuser, accountTable.UpdatedAt,
		accountTable.ID,
		accountTable.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role, user.IsSuperuser, user.ID,
	).Scan(&user.UpdatedAt)

	return translate(err, "update_user")
}

// Delete removes an account by id.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, accountTable.Table, accountTable.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// SetConfirmationCode replaces any earlier digest, so only the newest code works.
func (repository *PostgresRepository) SetConfirmationCode(context context.Context, id int64, digest string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = now() WHERE %s = $2`,
		accountTable.Table, accountTable.ConfirmationCodeHash, accountTable.UpdatedAt, accountTable.ID)

	tag, err := repository.db.Exec(context, query, digest, id)
	if err != nil {
		return dberr.Wrap(err, "set_confirmation_code")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// ConsumeConfirmationCode compares and clears in a single statement.
func (repository *PostgresRepository) ConsumeConfirmationCode(context context.Context, id int64, digest string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL, %s = now() WHERE %s = $1 AND %s = $2`,
		accountTable.Table, accountTable.ConfirmationCodeHash, accountTable.UpdatedAt,
		accountTable.ID, accountTable.ConfirmationCodeHash)

	tag, err := repository.db.Exec(context, query, id, digest)
	if err != nil {
		return false, dberr.Wrap(err, "consume_confirmation_code")
	}
	return tag.RowsAffected() == 1, nil
}

// translate maps the unique indexes to field errors and a missing row to 404.
func translate(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("User")
	}
	for constraint, field := range uniqueFields {
		if dberr.IsUniqueViolation(err, constraint) {
			return errTaken(field)
		}
	}
	return dberr.Wrap(err, action)
}

// errTaken is the validation error for a username or email already in use.
func errTaken(field string) error {
	return apperr.Invalid(field, fmt.Sprintf("A user with this %s already exists", field))
}
