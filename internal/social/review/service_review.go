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

// # Review Lookups

// ListReviews returns a page of a title's reviews. A missing title is a 404.
func (service *Service) ListReviews(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	if _, err := service.titles.Get(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.reviews.ListReviews(context, titleID, limit, offset)
}

// GetReview returns one review of a title.
func (service *Service) GetReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	return service.reviews.FindReview(context, titleID, reviewID)
}

// # Review Management

/*
CreateReview publishes the subject's review of a title.

Description: Checks run in a fixed order. The policy comes first, then the
title must exist, then the payload is validated, and finally the author must
not have reviewed the title yet. The storage constraint repeats the last
check for concurrent requests.

Parameters:
  - context: context.Context
  - subject: *access.Subject (nil for anonymous)
  - titleID: int64
  - input: ReviewInput

Returns:
  - *Review: the stored review
  - error: 401, 404 for the title, VALIDATION_ERROR for bad fields, or [ErrReviewExists]
*/
func (service *Service) CreateReview(context context.Context, subject *access.Subject, titleID int64, input ReviewInput) (*Review, error) {
	if err := access.Authorize(subject, access.KindAuthored, access.Create, nil); err != nil {
		return nil, err
	}

	if _, err := service.titles.Get(context, titleID); err != nil {
		return nil, err
	}

	review := &Review{TitleID: titleID, AuthorID: subject.UserID, Author: subject.Username}
	if err := applyReview(review, input, false); err != nil {
		return nil, err
	}

	exists, err := service.reviews.ReviewExists(context, titleID, subject.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	if err := service.reviews.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("title_id", titleID),
		slog.Int64("author_id", subject.UserID),
		slog.Int("score", review.Score),
	)

	return review, nil
}

/*
UpdateReview edits a review.

Description: The review is loaded first so a missing one reports 404 before
the ownership check reports 403. No duplicate check runs: the author and the
title never change.
*/
func (service *Service) UpdateReview(context context.Context, subject *access.Subject, titleID, reviewID int64, input ReviewInput, partial bool) (*Review, error) {
	if err := access.Authorize(subject, access.KindAuthored, access.Update, nil); err != nil {
		return nil, err
	}

	review, err := service.reviews.FindReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := access.Authorize(subject, access.KindAuthored, access.Update, &access.Object{AuthorID: review.AuthorID}); err != nil {
		return nil, err
	}

	if err := applyReview(review, input, partial); err != nil {
		return nil, err
	}

	if err := service.reviews.UpdateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "review_updated",
		slog.Int64("review_id", review.ID),
		slog.Int64("actor_id", subject.UserID),
	)

	return review, nil
}

// DeleteReview removes a review and its comments.
func (service *Service) DeleteReview(context context.Context, subject *access.Subject, titleID, reviewID int64) error {
	if err := access.Authorize(subject, access.KindAuthored, access.Delete, nil); err != nil {
		return err
	}

	review, err := service.reviews.FindReview(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := access.Authorize(subject, access.KindAuthored, access.Delete, &access.Object{AuthorID: review.AuthorID}); err != nil {
		return err
	}

	if err := service.reviews.DeleteReview(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "review_deleted",
		slog.Int64("review_id", reviewID),
		slog.Int64("actor_id", subject.UserID),
	)

	return nil
}

// applyReview validates input onto review. Without partial both fields are required.
func applyReview(review *Review, input ReviewInput, partial bool) error {
	validator := &validate.Validator{}

	if input.Text != nil || !partial {
		review.Text = strings.TrimSpace(pointer.Val(input.Text))
		validator.Required(FieldText, review.Text)
	}

	switch {
	case input.Score != nil:
		validator.Score(FieldScore, *input.Score)
		review.Score = *input.Score
	case !partial:
		validator.Custom(FieldScore, true, "This field is required")
	}

	return validator.Err()
}
