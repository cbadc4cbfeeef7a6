// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/social/review"
)

// memoryRepository implements both repositories in memory.
// The (title, author) uniqueness is enforced inside CreateReview like the storage constraint.
type memoryRepository struct {
	mu       sync.Mutex
	nextID   int64
	clock    time.Time
	reviews  []*review.Review
	comments []*review.Comment
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (repo *memoryRepository) tick() (int64, time.Time) {
	repo.nextID++
	repo.clock = repo.clock.Add(time.Minute)
	return repo.nextID, repo.clock
}

func page[T any](items []T, limit, offset int) ([]T, int) {
	total := len(items)
	if offset >= total {
		return []T{}, total
	}
	return items[offset:min(offset+limit, total)], total
}

func (repo *memoryRepository) ListReviews(_ context.Context, titleID int64, limit, offset int) ([]*review.Review, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	matched := []*review.Review{}
	for _, stored := range repo.reviews {
		if stored.TitleID == titleID {
			copied := *stored
			matched = append(matched, &copied)
		}
	}
	slices.SortFunc(matched, func(a, b *review.Review) int {
		if cmp := b.PubDate.Compare(a.PubDate); cmp != 0 {
			return cmp
		}
		return a.Score - b.Score
	})

	items, total := page(matched, limit, offset)
	return items, total, nil
}

func (repo *memoryRepository) FindReview(_ context.Context, titleID, reviewID int64) (*review.Review, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, stored := range repo.reviews {
		if stored.ID == reviewID && stored.TitleID == titleID {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Review")
}

func (repo *memoryRepository) ReviewExists(_ context.Context, titleID, authorID int64) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return slices.ContainsFunc(repo.reviews, func(stored *review.Review) bool {
		return stored.TitleID == titleID && stored.AuthorID == authorID
	}), nil
}

func (repo *memoryRepository) CreateReview(_ context.Context, created *review.Review) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, stored := range repo.reviews {
		if stored.TitleID == created.TitleID && stored.AuthorID == created.AuthorID {
			return review.ErrReviewExists
		}
	}
	created.ID, created.PubDate = repo.tick()
	copied := *created
	repo.reviews = append(repo.reviews, &copied)
	return nil
}

func (repo *memoryRepository) UpdateReview(_ context.Context, updated *review.Review) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, stored := range repo.reviews {
		if stored.ID == updated.ID && stored.TitleID == updated.TitleID {
			stored.Text, stored.Score = updated.Text, updated.Score
			return nil
		}
	}
	return apperr.NotFound("Review")
}

func (repo *memoryRepository) DeleteReview(_ context.Context, titleID, reviewID int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	before := len(repo.reviews)
	repo.reviews = slices.DeleteFunc(repo.reviews, func(stored *review.Review) bool {
		return stored.ID == reviewID && stored.TitleID == titleID
	})
	if len(repo.reviews) == before {
		return apperr.NotFound("Review")
	}
	repo.comments = slices.DeleteFunc(repo.comments, func(stored *review.Comment) bool {
		return stored.ReviewID == reviewID
	})
	return nil
}

func (repo *memoryRepository) ListComments(_ context.Context, reviewID int64, limit, offset int) ([]*review.Comment, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	matched := []*review.Comment{}
	for _, stored := range repo.comments {
		if stored.ReviewID == reviewID {
			copied := *stored
			matched = append(matched, &copied)
		}
	}
	slices.SortFunc(matched, func(a, b *review.Comment) int { return b.PubDate.Compare(a.PubDate) })

	items, total := page(matched, limit, offset)
	return items, total, nil
}

func (repo *memoryRepository) FindComment(_ context.Context, reviewID, commentID int64) (*review.Comment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, stored := range repo.comments {
		if stored.ID == commentID && stored.ReviewID == reviewID {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Comment")
}

func (repo *memoryRepository) CreateComment(_ context.Context, created *review.Comment) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	created.ID, created.PubDate = repo.tick()
	copied := *created
	repo.comments = append(repo.comments, &copied)
	return nil
}

func (repo *memoryRepository) UpdateComment(_ context.Context, updated *review.Comment) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, stored := range repo.comments {
		if stored.ID == updated.ID && stored.ReviewID == updated.ReviewID {
			stored.Text = updated.Text
			return nil
		}
	}
	return apperr.NotFound("Comment")
}

func (repo *memoryRepository) DeleteComment(_ context.Context, reviewID, commentID int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	before := len(repo.comments)
	repo.comments = slices.DeleteFunc(repo.comments, func(stored *review.Comment) bool {
		return stored.ID == commentID && stored.ReviewID == reviewID
	})
	if len(repo.comments) == before {
		return apperr.NotFound("Comment")
	}
	return nil
}

// knownTitles resolves a fixed set of title ids.
type knownTitles map[int64]string

func (titles knownTitles) Get(_ context.Context, id int64) (*title.Title, error) {
	name, ok := titles[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	return &title.Title{ID: id, Name: name}, nil
}
