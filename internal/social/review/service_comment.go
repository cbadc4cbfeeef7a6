// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/access"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// # Comment Lookups

// ListComments returns a page of comments. The review must belong to the title.
func (service *Service) ListComments(context context.Context, titleID, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	if _, err := service.reviews.FindReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.comments.ListComments(context, reviewID, limit, offset)
}

// GetComment returns one comment reached through its title and review.
func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if _, err := service.reviews.FindReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.comments.FindComment(context, reviewID, commentID)
}

// # Comment Management

// CreateComment posts a comment under a review of a title.
func (service *Service) CreateComment(context context.Context, subject *access.Subject, titleID, reviewID int64, input CommentInput) (*Comment, error) {
	if err := access.Authorize(subject, access.KindAuthored, access.Create, nil); err != nil {
		return nil, err
	}

	if _, err := service.reviews.FindReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{ReviewID: reviewID, AuthorID: subject.UserID, Author: subject.Username}
	if err := applyComment(comment, input); err != nil {
		return nil, err
	}

	if err := service.comments.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", reviewID),
		slog.Int64("author_id", subject.UserID),
	)

	return comment, nil
}

// UpdateComment edits a comment. Only its author and staff may do so.
func (service *Service) UpdateComment(context context.Context, subject *access.Subject, titleID, reviewID, commentID int64, input CommentInput) (*Comment, error) {
	if err := access.Authorize(subject, access.KindAuthored, access.Update, nil); err != nil {
		return nil, err
	}

	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := access.Authorize(subject, access.KindAuthored, access.Update, &access.Object{AuthorID: comment.AuthorID}); err != nil {
		return nil, err
	}

	if err := applyComment(comment, input); err != nil {
		return nil, err
	}

	if err := service.comments.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_updated",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("actor_id", subject.UserID),
	)

	return comment, nil
}

// DeleteComment removes a comment.
func (service *Service) DeleteComment(context context.Context, subject *access.Subject, titleID, reviewID, commentID int64) error {
	if err := access.Authorize(subject, access.KindAuthored, access.Delete, nil); err != nil {
		return err
	}

	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := access.Authorize(subject, access.KindAuthored, access.Delete, &access.Object{AuthorID: comment.AuthorID}); err != nil {
		return err
	}

	if err := service.comments.DeleteComment(context, reviewID, commentID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "comment_deleted",
		slog.Int64("comment_id", commentID),
		slog.Int64("actor_id", subject.UserID),
	)

	return nil
}

// applyComment validates the text. It is required for both create and update.
func applyComment(comment *Comment, input CommentInput) error {
	comment.Text = strings.TrimSpace(pointer.Val(input.Text))
	return (&validate.Validator{}).Required(FieldText, comment.Text).Err()
}
