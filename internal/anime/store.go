// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package anime

import "context"

// Repository is the persistence contract for Anime records.
//
// Implementations must return [dberr.ErrNotFound] (or an error wrapping it)
// from FindByID/FindByName when no row matches.
type Repository interface {
	// ListAll returns every record ordered by primary key.
	ListAll(ctx context.Context) ([]*Anime, error)

	// List returns one page of records ordered by primary key, plus the
	// total record count for pagination metadata.
	List(ctx context.Context, limit, offset int) ([]*Anime, int, error)

	// FindByID returns the record with the given id.
	FindByID(ctx context.Context, id int64) (*Anime, error)

	// FindByName returns the record whose name matches exactly.
	FindByName(ctx context.Context, name string) (*Anime, error)

	// Save inserts the record when its ID is unset and updates it otherwise.
	// On insert the server-assigned ID and timestamps are written back.
	Save(ctx context.Context, anime *Anime) error

	// Delete removes the record with the argument's ID. Deleting an ID that
	// no longer exists is not an error (idempotent).
	Delete(ctx context.Context, anime *Anime) error

	// InTx runs fn against a transaction-scoped repository. The transaction
	// commits when fn returns nil and rolls back otherwise, so a
	// read-modify-write sequence is atomic and invisible until commit.
	InTx(ctx context.Context, fn func(Repository) error) error
}
