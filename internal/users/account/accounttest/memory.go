// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package accounttest provides an in-memory [account.Repository] for tests.
package accounttest

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
)

// Memory stores accounts in a slice guarded by a mutex. Username and email
// uniqueness is case-insensitive and the code consumption is atomic, like
// the postgres repository.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	users  []*account.User
	codes  map[int64]string
}

// NewMemory returns an empty repository.
func NewMemory() *Memory {
	return &Memory{codes: map[int64]string{}}
}

// Seed stores a user directly and returns it with its id.
func (memory *Memory) Seed(username, email string, role sec.UserRole) *account.User {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	memory.nextID++
	user := &account.User{ID: memory.nextID, Username: username, Email: email, Role: role, CreatedAt: time.Now()}
	memory.users = append(memory.users, user)
	copied := *user
	return &copied
}

// Code returns the stored confirmation digest of a user, or "".
func (memory *Memory) Code(id int64) string {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	return memory.codes[id]
}

// Count returns the number of stored accounts.
func (memory *Memory) Count() int {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	return len(memory.users)
}

func (memory *Memory) index(match func(*account.User) bool) int {
	return slices.IndexFunc(memory.users, match)
}

func (memory *Memory) List(_ context.Context, filter account.Filter, limit, offset int) ([]*account.User, int, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()

	matched := []*account.User{}
	for _, user := range memory.users {
		if filter.Search == "" || strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) {
			copied := *user
			matched = append(matched, &copied)
		}
	}
	slices.SortFunc(matched, func(a, b *account.User) int { return strings.Compare(a.Username, b.Username) })

	total := len(matched)
	if offset >= total {
		return []*account.User{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (memory *Memory) FindByID(_ context.Context, id int64) (*account.User, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	if i := memory.index(func(user *account.User) bool { return user.ID == id }); i >= 0 {
		copied := *memory.users[i]
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (memory *Memory) FindByUsername(_ context.Context, username string) (*account.User, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	if i := memory.index(func(user *account.User) bool { return strings.EqualFold(user.Username, username) }); i >= 0 {
		copied := *memory.users[i]
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (memory *Memory) UsernameTaken(_ context.Context, username string, exceptID int64) (bool, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	return memory.index(func(user *account.User) bool {
		return user.ID != exceptID && strings.EqualFold(user.Username, username)
	}) >= 0, nil
}

func (memory *Memory) EmailTaken(_ context.Context, email string, exceptID int64) (bool, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	return memory.index(func(user *account.User) bool {
		return user.ID != exceptID && strings.EqualFold(user.Email, email)
	}) >= 0, nil
}

func (memory *Memory) clash(candidate *account.User) error {
	for _, user := range memory.users {
		if user.ID == candidate.ID {
			continue
		}
		if strings.EqualFold(user.Username, candidate.Username) {
			return apperr.Invalid(account.FieldUsername, "A user with this username already exists")
		}
		if strings.EqualFold(user.Email, candidate.Email) {
			return apperr.Invalid(account.FieldEmail, "A user with this email already exists")
		}
	}
	return nil
}

func (memory *Memory) Create(_ context.Context, user *account.User) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	if err := memory.clash(user); err != nil {
		return err
	}
	memory.nextID++
	user.ID = memory.nextID
	user.CreatedAt, user.UpdatedAt = time.Now(), time.Now()
	copied := *user
	memory.users = append(memory.users, &copied)
	return nil
}

func (memory *Memory) Update(_ context.Context, user *account.User) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	i := memory.index(func(stored *account.User) bool { return stored.ID == user.ID })
	if i < 0 {
		return apperr.NotFound("User")
	}
	if err := memory.clash(user); err != nil {
		return err
	}
	user.UpdatedAt = time.Now()
	copied := *user
	memory.users[i] = &copied
	return nil
}

func (memory *Memory) Delete(_ context.Context, id int64) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	i := memory.index(func(user *account.User) bool { return user.ID == id })
	if i < 0 {
		return apperr.NotFound("User")
	}
	memory.users = slices.Delete(memory.users, i, i+1)
	delete(memory.codes, id)
	return nil
}

func (memory *Memory) SetConfirmationCode(_ context.Context, id int64, digest string) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	if memory.index(func(user *account.User) bool { return user.ID == id }) < 0 {
		return apperr.NotFound("User")
	}
	memory.codes[id] = digest
	return nil
}

func (memory *Memory) ConsumeConfirmationCode(_ context.Context, id int64, digest string) (bool, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	if stored, ok := memory.codes[id]; !ok || stored != digest {
		return false, nil
	}
	delete(memory.codes, id)
	return true, nil
}

var _ account.Repository = (*Memory)(nil)
