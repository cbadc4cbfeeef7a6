// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"errors"
	"fmt"

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

func tableFor(kind Kind) schema.ReferenceTable {
	if kind == KindGenre {
		return schema.CatalogGenre
	}
	return schema.CatalogCategory
}

/*
List returns a page of entries with the total count.

Description: The optional name search is an escaped ILIKE built with squirrel.
COUNT(*) OVER() returns the total alongside the page in one round-trip.
*/
func (repository *PostgresRepository) List(context context.Context, kind Kind, filter Filter, limit, offset int) ([]*Entry, int, error) {
	table := tableFor(kind)

	builder := postgres.SQL.
		Select(table.ID, table.Name, table.Slug, "COUNT(*) OVER() AS total").
		From(table.Table).
		OrderBy(table.Name+" ASC", table.ID+" ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if filter.Search != "" {
		builder = builder.Where(sq.ILike{table.Name: postgres.Contains(filter.Search)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, apperr.Internal(fmt.Errorf("build_list_%s: %w", kind, err))
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_"+string(kind))
	}
	defer rows.Close()

	entries := make([]*Entry, 0, limit)
	total := 0
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Slug, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_"+string(kind))
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_"+string(kind))
	}

	// An offset past the end yields no rows and therefore no window count.
	if len(entries) == 0 && offset > 0 {
		total, err = repository.count(context, kind, filter)
		if err != nil {
			return nil, 0, err
		}
	}

	return entries, total, nil
}

func (repository *PostgresRepository) count(context context.Context, kind Kind, filter Filter) (int, error) {
	table := tableFor(kind)
	builder := postgres.SQL.Select("COUNT(*)").From(table.Table)
	if filter.Search != "" {
		builder = builder.Where(sq.ILike{table.Name: postgres.Contains(filter.Search)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, apperr.Internal(err)
	}

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_"+string(kind))
	}
	return total, nil
}

// FindBySlug performs a direct lookup on the unique slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, kind Kind, slug string) (*Entry, error) {
	table := tableFor(kind)
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		table.ID, table.Name, table.Slug, table.Table, table.Slug)

	entry := &Entry{}
	err := repository.db.QueryRow(context, query, slug).Scan(&entry.ID, &entry.Name, &entry.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(kind.Label())
		}
		return nil, dberr.Wrap(err, "find_"+string(kind))
	}

	return entry, nil
}

// FindBySlugs resolves several slugs with one ANY($1) query.
func (repository *PostgresRepository) FindBySlugs(context context.Context, kind Kind, slugs []string) ([]*Entry, error) {
	if len(slugs) == 0 {
		return []*Entry{}, nil
	}

	table := tableFor(kind)
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s`,
		table.ID, table.Name, table.Slug, table.Table, table.Slug, table.Name)

	rows, err := repository.db.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "find_"+string(kind)+"_by_slugs")
	}
	defer rows.Close()

	entries := make([]*Entry, 0, len(slugs))
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_"+string(kind))
		}
		entries = append(entries, entry)
	}

	return entries, dberr.Wrap(rows.Err(), "find_"+string(kind)+"_by_slugs")
}

// Create inserts a new entry and hydrates its identity.
func (repository *PostgresRepository) Create(context context.Context, kind Kind, entry *Entry) error {
	table := tableFor(kind)
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		table.Table, table.Name, table.Slug, table.ID)

	err := repository.db.QueryRow(context, query, entry.Name, entry.Slug).Scan(&entry.ID)
	return repository.translate(err, kind, "create_"+string(kind))
}

// Update rewrites the name of the entry stored under entry.Slug. The slug itself is never written.
func (repository *PostgresRepository) Update(context context.Context, kind Kind, entry *Entry) error {
	table := tableFor(kind)
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2 RETURNING %s`,
		table.Table, table.Name, table.Slug, table.ID)

	err := repository.db.QueryRow(context, query, entry.Name, entry.Slug).Scan(&entry.ID)
	return repository.translate(err, kind, "update_"+string(kind))
}

// Delete removes an entry. Title links are handled by the foreign keys.
func (repository *PostgresRepository) Delete(context context.Context, kind Kind, slug string) error {
	table := tableFor(kind)
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_"+string(kind))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(kind.Label())
	}
	return nil
}

func (repository *PostgresRepository) translate(err error, kind Kind, action string) error {
	if err == nil {
		return nil
	}
	if dberr.IsUniqueViolation(err, tableFor(kind).SlugKey) {
		return ErrSlugTaken(kind)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(kind.Label())
	}
	return dberr.Wrap(err, action)
}

// ErrSlugTaken is the validation error for a duplicate slug.
func ErrSlugTaken(kind Kind) error {
	return apperr.Invalid(FieldSlug, fmt.Sprintf("%s with this slug already exists", kind.Label()))
}
