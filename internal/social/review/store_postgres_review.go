// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

// reviewColumns is the projection shared by the review reads, author joined as "a".
func reviewColumns() string {
	return fmt.Sprintf(`r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s`,
		reviewTable.ID, reviewTable.TitleID, reviewTable.AuthorID, accountTable.Username,
		reviewTable.Text, reviewTable.Score, reviewTable.PubDate)
}

func reviewJoin() string {
	return fmt.Sprintf(`%s r JOIN %s a ON a.%s = r.%s`,
		reviewTable.Table, accountTable.Table, accountTable.ID, reviewTable.AuthorID)
}

func scanReview(row pgx.Row, extra ...any) (*Review, error) {
	review := &Review{}
	destinations := append([]any{
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate,
	}, extra...)
	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}
	return review, nil
}

/*
ListReviews returns a page of reviews of one title.

Description: Ordered by publication date descending, then score. COUNT(*)
OVER() returns the total alongside the page.
*/
func (repository *PostgresRepository) ListReviews(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		WHERE r.%s = $1
		ORDER BY r.%s DESC, r.%s ASC, r.%s DESC
		LIMIT $2 OFFSET $3
	`, reviewColumns(), reviewJoin(), reviewTable.TitleID,
		reviewTable.PubDate, reviewTable.Score, reviewTable.ID)

	rows, err := repository.db.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0, limit)
	total := 0
	for rows.Next() {
		review, err := scanReview(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}

	if len(reviews) == 0 && offset > 0 {
		count := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, reviewTable.Table, reviewTable.TitleID)
		if err := repository.db.QueryRow(context, count, titleID).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_reviews")
		}
	}

	return reviews, total, nil
}

// FindReview scopes the lookup to the title so a foreign review reads as missing.
func (repository *PostgresRepository) FindReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE r.%s = $1 AND r.%s = $2`,
		reviewColumns(), reviewJoin(), reviewTable.ID, reviewTable.TitleID)

	review, err := scanReview(repository.db.QueryRow(context, query, reviewID, titleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "find_review")
	}
	return review, nil
}

// ReviewExists checks the (title, author) pair.
func (repository *PostgresRepository) ReviewExists(context context.Context, titleID, authorID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		reviewTable.Table, reviewTable.TitleID, reviewTable.AuthorID)

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_exists")
	}
	return exists, nil
}

/*
CreateReview inserts a review.

Description: The composite unique key on (title, author) is the final guard
against two concurrent first reviews. Its violation is reported as
[ErrReviewExists], the same error the service pre-check returns.
*/
func (repository *PostgresRepository) CreateReview(context context.Context, review *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`, reviewTable.Table, reviewTable.TitleID, reviewTable.AuthorID, reviewTable.Text, reviewTable.Score,
		reviewTable.ID, reviewTable.PubDate)

	err := repository.db.QueryRow(context, query, review.TitleID, review.AuthorID, review.Text, review.Score).
		Scan(&review.ID, &review.PubDate)
	if err != nil {
		if dberr.IsUniqueViolation(err, reviewTable.TitleAuthorKey) {
			return ErrReviewExists
		}
		if dberr.IsForeignKeyViolation(err, reviewTable.AuthorFKey) {
			return ErrAuthorGone
		}
		if dberr.IsForeignKeyViolation(err, reviewTable.TitleFKey) {
			return apperr.NotFound("Title")
		}
		return dberr.Wrap(err, "create_review")
	}
	return nil
}

// UpdateReview rewrites text and score of a review within its title.
func (repository *PostgresRepository) UpdateReview(context context.Context, review *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3 AND %s = $4`,
		reviewTable.Table, reviewTable.Text, reviewTable.Score, reviewTable.ID, reviewTable.TitleID)

	tag, err := repository.db.Exec(context, query, review.Text, review.Score, review.ID, review.TitleID)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

// DeleteReview removes a review within its title. Comments cascade.
func (repository *PostgresRepository) DeleteReview(context context.Context, titleID, reviewID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		reviewTable.Table, reviewTable.ID, reviewTable.TitleID)

	tag, err := repository.db.Exec(context, query, reviewID, titleID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}
