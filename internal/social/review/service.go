// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yamdb/internal/core/title"
)

// TitleFinder loads the title a review is written about. [title.Service] satisfies it.
type TitleFinder interface {
	Get(context context.Context, id int64) (*title.Title, error)
}

// # Service Layer

// Service implements the review and comment use cases.
type Service struct {
	reviews  ReviewRepository
	comments CommentRepository
	titles   TitleFinder
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(reviews ReviewRepository, comments CommentRepository, titles TitleFinder, logger *slog.Logger) *Service {
	return &Service{
		reviews:  reviews,
		comments: comments,
		titles:   titles,
		logger:   logger,
	}
}
