// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// memoryRepository is an in-memory [title.Repository]. Ratings are set directly by tests.
type memoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	titles  map[int64]*title.Title
	ratings map[int64]float64
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{titles: map[int64]*title.Title{}, ratings: map[int64]float64{}}
}

func (repo *memoryRepository) snapshot(stored *title.Title) *title.Title {
	copied := *stored
	copied.Genre = slices.Clone(stored.Genre)
	if rating, ok := repo.ratings[stored.ID]; ok {
		copied.Rating = &rating
	}
	return &copied
}

func (repo *memoryRepository) matches(stored *title.Title, filter title.Filter) bool {
	if filter.Name != "" && !strings.Contains(strings.ToLower(stored.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if filter.Year != nil && stored.Year != *filter.Year {
		return false
	}
	if filter.Category != "" && (stored.Category == nil || stored.Category.Slug != filter.Category) {
		return false
	}
	if filter.Genre != "" && !slices.ContainsFunc(stored.Genre, func(genre *reference.Genre) bool { return genre.Slug == filter.Genre }) {
		return false
	}
	return true
}

func (repo *memoryRepository) List(_ context.Context, filter title.Filter, limit, offset int) ([]*title.Title, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var matched []*title.Title
	for _, stored := range repo.titles {
		if repo.matches(stored, filter) {
			matched = append(matched, repo.snapshot(stored))
		}
	}
	slices.SortFunc(matched, func(a, b *title.Title) int { return int(a.ID - b.ID) })

	total := len(matched)
	if offset >= total {
		return []*title.Title{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id int64) (*title.Title, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	stored, ok := repo.titles[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	return repo.snapshot(stored), nil
}

func (repo *memoryRepository) Create(_ context.Context, created *title.Title) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.nextID++
	created.ID = repo.nextID
	repo.titles[created.ID] = repo.snapshot(created)
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, updated *title.Title) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.titles[updated.ID]; !ok {
		return apperr.NotFound("Title")
	}
	stored := *updated
	stored.Rating = nil
	stored.Genre = slices.Clone(updated.Genre)
	repo.titles[updated.ID] = &stored
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.titles[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(repo.titles, id)
	delete(repo.ratings, id)
	return nil
}

// staticResolver resolves slugs against a fixed set of entries.
type staticResolver map[reference.Kind][]*reference.Entry

func (resolver staticResolver) FindBySlugs(_ context.Context, kind reference.Kind, slugs []string) ([]*reference.Entry, error) {
	found := []*reference.Entry{}
	for _, entry := range resolver[kind] {
		if slices.Contains(slugs, entry.Slug) {
			copied := *entry
			found = append(found, &copied)
		}
	}
	return found, nil
}

var catalog = staticResolver{
	reference.KindCategory: {
		{ID: 1, Name: "Books", Slug: "books"},
		{ID: 2, Name: "Films", Slug: "films"},
	},
	reference.KindGenre: {
		{ID: 10, Name: "Drama", Slug: "drama"},
		{ID: 11, Name: "Comedy", Slug: "comedy"},
	},
}
