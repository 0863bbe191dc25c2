// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/paulohdf/animedex/internal/platform/dberr"
)

// InMemoryUserRepository is a development and test implementation of UserRepository.
type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]User // username -> record
	nextID int64
}

// NewInMemoryUserRepository creates an empty in-memory credential store.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]User)}
}

func (s *InMemoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &user, nil
}

func (s *InMemoryUserRepository) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return nil
	}

	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now().UTC()
	s.users[user.Username] = *user
	return nil
}

var _ UserRepository = (*InMemoryUserRepository)(nil)
