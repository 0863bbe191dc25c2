// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package anime

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/paulohdf/animedex/internal/platform/dberr"
)

// InMemoryRepository is a development and test implementation of Repository.
//
// # Concurrency
//
// A single RWMutex guards the map; each operation is individually atomic.
// InTx provides no rollback — the memory store is not meant to exercise
// transactional failure paths, only domain logic.
type InMemoryRepository struct {
	mu     sync.RWMutex
	animes map[int64]Anime
	nextID int64
}

// NewInMemoryRepository creates an empty in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{animes: make(map[int64]Anime)}
}

func (s *InMemoryRepository) ListAll(_ context.Context) ([]*Anime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedLocked(), nil
}

func (s *InMemoryRepository) List(_ context.Context, limit, offset int) ([]*Anime, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sortedLocked()
	total := len(all)

	if offset >= total {
		return nil, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (s *InMemoryRepository) FindByID(_ context.Context, id int64) (*Anime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.animes[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return &record, nil
}

func (s *InMemoryRepository) FindByName(_ context.Context, name string) (*Anime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.sortedLocked() {
		if record.Name == name {
			return record, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (s *InMemoryRepository) Save(_ context.Context, anime *Anime) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if anime.ID == 0 {
		s.nextID++
		anime.ID = s.nextID
		anime.CreatedAt = now
	} else if _, ok := s.animes[anime.ID]; !ok {
		return dberr.ErrNotFound
	}
	anime.UpdatedAt = now

	s.animes[anime.ID] = *anime
	return nil
}

func (s *InMemoryRepository) Delete(_ context.Context, anime *Anime) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Deleting an absent id is a no-op, matching the SQL implementation.
	delete(s.animes, anime.ID)
	return nil
}

func (s *InMemoryRepository) InTx(_ context.Context, fn func(Repository) error) error {
	return fn(s)
}

// sortedLocked returns records ordered by primary key. Callers must hold the lock.
func (s *InMemoryRepository) sortedLocked() []*Anime {
	out := make([]*Anime, 0, len(s.animes))
	for id := range s.animes {
		record := s.animes[id]
		out = append(out, &record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ Repository = (*InMemoryRepository)(nil)
