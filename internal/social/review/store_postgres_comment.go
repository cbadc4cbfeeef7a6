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

func commentColumns() string {
	return fmt.Sprintf(`c.%s, c.%s, c.%s, a.%s, c.%s, c.%s`,
		commentTable.ID, commentTable.ReviewID, commentTable.AuthorID, accountTable.Username,
		commentTable.Text, commentTable.PubDate)
}

func commentJoin() string {
	return fmt.Sprintf(`%s c JOIN %s a ON a.%s = c.%s`,
		commentTable.Table, accountTable.Table, accountTable.ID, commentTable.AuthorID)
}

func scanComment(row pgx.Row, extra ...any) (*Comment, error) {
	comment := &Comment{}
	destinations := append([]any{
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.PubDate,
	}, extra...)
	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a page of a review's comments, newest first.
func (repository *PostgresRepository) ListComments(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		WHERE c.%s = $1
		ORDER BY c.%s DESC, c.%s DESC
		LIMIT $2 OFFSET $3
	`, commentColumns(), commentJoin(), commentTable.ReviewID, commentTable.PubDate, commentTable.ID)

	rows, err := repository.db.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	total := 0
	for rows.Next() {
		comment, err := scanComment(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}

	if len(comments) == 0 && offset > 0 {
		count := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, commentTable.Table, commentTable.ReviewID)
		if err := repository.db.QueryRow(context, count, reviewID).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_comments")
		}
	}

	return comments, total, nil
}

// FindComment scopes the lookup to the review.
func (repository *PostgresRepository) FindComment(context context.Context, reviewID, commentID int64) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE c.%s = $1 AND c.%s = $2`,
		commentColumns(), commentJoin(), commentTable.ID, commentTable.ReviewID)

	comment, err := scanComment(repository.db.QueryRow(context, query, commentID, reviewID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "find_comment")
	}
	return comment, nil
}

// CreateComment inserts a comment. A review deleted meanwhile reads as missing.
func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		RETURNING %s, %s
	`, commentTable.Table, commentTable.ReviewID, commentTable.AuthorID, commentTable.Text,
		commentTable.ID, commentTable.PubDate)

	err := repository.db.QueryRow(context, query, comment.ReviewID, comment.AuthorID, comment.Text).
		Scan(&comment.ID, &comment.PubDate)
	if err != nil {
		if dberr.IsForeignKeyViolation(err, commentTable.AuthorFKey) {
			return ErrAuthorGone
		}
		if dberr.IsForeignKeyViolation(err, commentTable.ReviewFKey) {
			return apperr.NotFound("Review")
		}
		return dberr.Wrap(err, "create_comment")
	}
	return nil
}

// UpdateComment rewrites the text of a comment within its review.
func (repository *PostgresRepository) UpdateComment(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2 AND %s = $3`,
		commentTable.Table, commentTable.Text, commentTable.ID, commentTable.ReviewID)

	tag, err := repository.db.Exec(context, query, comment.Text, comment.ID, comment.ReviewID)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

// DeleteComment removes a comment within its review.
func (repository *PostgresRepository) DeleteComment(context context.Context, reviewID, commentID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		commentTable.Table, commentTable.ID, commentTable.ReviewID)

	tag, err := repository.db.Exec(context, query, commentID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
