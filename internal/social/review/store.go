// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// # Review Data Access

// ReviewRepository defines the data access contract for reviews.
type ReviewRepository interface {

	/*
		ListReviews returns one page of a title's reviews, newest first.

		Parameters:
		  - context: context.Context
		  - titleID: int64
		  - limit, offset: int

		Returns:
		  - []*Review: the page, author usernames resolved
		  - int: total reviews of the title
		  - error: database failures
	*/
	ListReviews(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error)

	// FindReview returns the review only if it belongs to titleID.
	FindReview(context context.Context, titleID, reviewID int64) (*Review, error)

	// ReviewExists reports whether the author already reviewed the title.
	ReviewExists(context context.Context, titleID, authorID int64) (bool, error)

	// CreateReview inserts review and sets ID and PubDate.
	// A second review by the same author on the same title fails with [ErrReviewExists].
	CreateReview(context context.Context, review *Review) error

	// UpdateReview rewrites text and score.
	UpdateReview(context context.Context, review *Review) error

	// DeleteReview removes a review and, by cascade, its comments.
	DeleteReview(context context.Context, titleID, reviewID int64) error
}

// # Comment Data Access

// CommentRepository defines the data access contract for comments.
type CommentRepository interface {

	// ListComments returns one page of a review's comments, newest first.
	ListComments(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error)

	// FindComment returns the comment only if it belongs to reviewID.
	FindComment(context context.Context, reviewID, commentID int64) (*Comment, error)

	// CreateComment inserts comment and sets ID and PubDate.
	CreateComment(context context.Context, comment *Comment) error

	// UpdateComment rewrites the text.
	UpdateComment(context context.Context, comment *Comment) error

	// DeleteComment removes a comment.
	DeleteComment(context context.Context, reviewID, commentID int64) error
}
