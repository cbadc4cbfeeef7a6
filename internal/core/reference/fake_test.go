// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// memoryRepository is an in-memory [reference.Repository] that enforces slug uniqueness.
type memoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	entries map[reference.Kind][]*reference.Entry
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{entries: map[reference.Kind][]*reference.Entry{}}
}

func (repo *memoryRepository) seed(kind reference.Kind, name, slug string) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.nextID++
	repo.entries[kind] = append(repo.entries[kind], &reference.Entry{ID: repo.nextID, Name: name, Slug: slug})
}

func (repo *memoryRepository) List(_ context.Context, kind reference.Kind, filter reference.Filter, limit, offset int) ([]*reference.Entry, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var matched []*reference.Entry
	for _, entry := range repo.entries[kind] {
		if filter.Search == "" || strings.Contains(strings.ToLower(entry.Name), strings.ToLower(filter.Search)) {
			copied := *entry
			matched = append(matched, &copied)
		}
	}
	slices.SortFunc(matched, func(a, b *reference.Entry) int { return strings.Compare(a.Name, b.Name) })

	total := len(matched)
	if offset >= total {
		return []*reference.Entry{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (repo *memoryRepository) find(kind reference.Kind, slug string) (int, *reference.Entry) {
	for i, entry := range repo.entries[kind] {
		if entry.Slug == slug {
			return i, entry
		}
	}
	return -1, nil
}

func (repo *memoryRepository) FindBySlug(_ context.Context, kind reference.Kind, slug string) (*reference.Entry, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, entry := repo.find(kind, slug); entry != nil {
		copied := *entry
		return &copied, nil
	}
	return nil, apperr.NotFound(kind.Label())
}

func (repo *memoryRepository) FindBySlugs(_ context.Context, kind reference.Kind, slugs []string) ([]*reference.Entry, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	found := []*reference.Entry{}
	for _, entry := range repo.entries[kind] {
		if slices.Contains(slugs, entry.Slug) {
			copied := *entry
			found = append(found, &copied)
		}
	}
	return found, nil
}

func (repo *memoryRepository) Create(_ context.Context, kind reference.Kind, entry *reference.Entry) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, existing := repo.find(kind, entry.Slug); existing != nil {
		return reference.ErrSlugTaken(kind)
	}
	repo.nextID++
	entry.ID = repo.nextID
	copied := *entry
	repo.entries[kind] = append(repo.entries[kind], &copied)
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, kind reference.Kind, entry *reference.Entry) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	_, current := repo.find(kind, entry.Slug)
	if current == nil {
		return apperr.NotFound(kind.Label())
	}
	current.Name = entry.Name
	entry.ID = current.ID
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, kind reference.Kind, slug string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	index, current := repo.find(kind, slug)
	if current == nil {
		return apperr.NotFound(kind.Label())
	}
	repo.entries[kind] = slices.Delete(repo.entries[kind], index, index+1)
	return nil
}
