// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/pkg/slice"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// genreRow carries the id that [reference.Entry] hides from JSON.
type genreRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var (
	titleTable    = schema.CatalogTitle
	categoryTable = schema.CatalogCategory
	genreTable    = schema.CatalogGenre
	linkTable     = schema.CatalogTitleGenre
	reviewTable   = schema.SocialReview
)

// selectTitles builds the hydrated projection shared by List and FindByID.
//
// The rating and the genre list are correlated sub-queries, so one row is
// produced per title without a GROUP BY over the joins.
func selectTitles(columns ...string) sq.SelectBuilder {
	rating := fmt.Sprintf(`(SELECT AVG(r.%s)::float8 FROM %s r WHERE r.%s = t.%s) AS rating`,
		reviewTable.Score, reviewTable.Table, reviewTable.TitleID, titleTable.ID)

	genres := fmt.Sprintf(`COALESCE((
			SELECT json_agg(json_build_object('id', g.%s, 'name', g.%s, 'slug', g.%s) ORDER BY g.%s)
			FROM %s g
			JOIN %s tg ON tg.%s = g.%s
			WHERE tg.%s = t.%s
		), '[]') AS genres`,
		genreTable.ID, genreTable.Name, genreTable.Slug, genreTable.Name,
		genreTable.Table,
		linkTable.Table, linkTable.GenreID, genreTable.ID,
		linkTable.TitleID, titleTable.ID)

	base := []string{
		"t." + titleTable.ID, "t." + titleTable.Name, "t." + titleTable.Year, "t." + titleTable.Description,
		rating,
		"c." + categoryTable.ID, "c." + categoryTable.Name, "c." + categoryTable.Slug,
		genres,
	}

	return postgres.SQL.
		Select(append(base, columns...)...).
		From(titleTable.Table + " t").
		LeftJoin(fmt.Sprintf("%s c ON c.%s = t.%s", categoryTable.Table, categoryTable.ID, titleTable.CategoryID))
}

func applyFilter(builder sq.SelectBuilder, filter Filter) sq.SelectBuilder {
	if filter.Name != "" {
		builder = builder.Where(sq.ILike{"t." + titleTable.Name: postgres.Contains(filter.Name)})
	}
	if filter.Year != nil {
		builder = builder.Where(sq.Eq{"t." + titleTable.Year: *filter.Year})
	}
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"c." + categoryTable.Slug: filter.Category})
	}
	if filter.Genre != "" {
		builder = builder.Where(sq.Expr(fmt.Sprintf(`EXISTS (
				SELECT 1 FROM %s tg JOIN %s g ON g.%s = tg.%s
				WHERE tg.%s = t.%s AND g.%s = ?
			)`,
			linkTable.Table, genreTable.Table, genreTable.ID, linkTable.GenreID,
			linkTable.TitleID, titleTable.ID, genreTable.Slug), filter.Genre))
	}
	return builder
}

// scanTitle hydrates one row of [selectTitles]. Extra destinations follow the base columns.
func scanTitle(row pgx.Row, extra ...any) (*Title, error) {
	var (
		title        Title
		categoryID   *int64
		categoryName *string
		categorySlug *string
		genres       []genreRow
	)

	destinations := append([]any{
		&title.ID, &title.Name, &title.Year, &title.Description,
		&title.Rating,
		&categoryID, &categoryName, &categorySlug,
		&genres,
	}, extra...)

	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}

	if categoryID != nil {
		title.Category = &reference.Category{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}
	title.Genre = slice.Map(genres, func(genre genreRow) *reference.Genre {
		return &reference.Genre{ID: genre.ID, Name: genre.Name, Slug: genre.Slug}
	})

	return &title, nil
}

/*
List returns a page of titles with the total count.

Description: Filters are composed with squirrel. COUNT(*) OVER() returns the
total alongside the page in one round-trip.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	builder := applyFilter(selectTitles("COUNT(*) OVER() AS total"), filter).
		OrderBy("t." + titleTable.ID + " ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, apperr.Internal(fmt.Errorf("build_list_titles: %w", err))
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0, limit)
	total := 0
	for rows.Next() {
		title, err := scanTitle(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}

	// An offset past the end yields no rows and therefore no window count.
	if len(titles) == 0 && offset > 0 {
		total, err = repository.count(context, filter)
		if err != nil {
			return nil, 0, err
		}
	}

	return titles, total, nil
}

func (repository *PostgresRepository) count(context context.Context, filter Filter) (int, error) {
	builder := applyFilter(postgres.SQL.Select("COUNT(*)").
		From(titleTable.Table+" t").
		LeftJoin(fmt.Sprintf("%s c ON c.%s = t.%s", categoryTable.Table, categoryTable.ID, titleTable.CategoryID)), filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, apperr.Internal(err)
	}

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_titles")
	}
	return total, nil
}

// FindByID returns one hydrated title.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Title, error) {
	query, args, err := selectTitles().Where(sq.Eq{"t." + titleTable.ID: id}).ToSql()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	title, err := scanTitle(repository.db.QueryRow(context, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, dberr.Wrap(err, "find_title")
	}

	return title, nil
}

/*
Create persists a new title and its genre links.

Description: The row and the links are written in one transaction, so a
failed link insert leaves no half-created title behind.
*/
func (repository *PostgresRepository) Create(context context.Context, title *Title) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		titleTable.Table, titleTable.Name, titleTable.Year, titleTable.Description, titleTable.CategoryID, titleTable.ID)

	err = transaction.QueryRow(context, query, title.Name, title.Year, title.Description, title.CategoryID()).Scan(&title.ID)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	if err := replaceGenres(context, transaction, title.ID, title.GenreIDs()); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_title")
}

// Update rewrites the row and replaces every genre link in one transaction.
func (repository *PostgresRepository) Update(context context.Context, title *Title) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4 WHERE %s = $5`,
		titleTable.Table, titleTable.Name, titleTable.Year, titleTable.Description, titleTable.CategoryID, titleTable.ID)

	tag, err := transaction.Exec(context, query, title.Name, title.Year, title.Description, title.CategoryID(), title.ID)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	if err := replaceGenres(context, transaction, title.ID, title.GenreIDs()); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "commit_update_title")
}

// replaceGenres clears the links of a title and queues the new ones in a batch.
func replaceGenres(context context.Context, transaction pgx.Tx, titleID int64, genreIDs []int64) error {
	unlink := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, linkTable.Table, linkTable.TitleID)
	if _, err := transaction.Exec(context, unlink, titleID); err != nil {
		return dberr.Wrap(err, "clear_title_genres")
	}

	if len(genreIDs) == 0 {
		return nil
	}

	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		linkTable.Table, linkTable.TitleID, linkTable.GenreID)

	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(insert, titleID, genreID)
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "link_title_genres")
	}
	return nil
}

// Delete removes a title. Foreign keys cascade to links, reviews and comments.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, titleTable.Table, titleTable.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}
	return nil
}
