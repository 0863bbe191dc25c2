// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package anime

import (
	"context"
	"errors"
	"log/slog"

	"github.com/paulohdf/animedex/internal/platform/apperr"
	"github.com/paulohdf/animedex/internal/platform/dberr"
	"github.com/paulohdf/animedex/internal/platform/validate"
)

// Service orchestrates the catalogue use cases: lookups with domain
// not-found errors, validation before any persistence attempt, and
// transactional demarcation of every mutating operation.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service with its dependencies.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Lookups

func (service *Service) ListAll(ctx context.Context) ([]*Anime, error) {
	return service.repo.ListAll(ctx)
}

func (service *Service) List(ctx context.Context, limit, offset int) ([]*Anime, int, error) {
	return service.repo.List(ctx, limit, offset)
}

// FindByID returns the record with the given id, or a not-found domain error.
func (service *Service) FindByID(ctx context.Context, id int64) (*Anime, error) {
	record, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("no anime with id")
		}
		return nil, err
	}
	return record, nil
}

// FindByName returns the record whose name matches exactly, or a not-found
// domain error.
func (service *Service) FindByName(ctx context.Context, name string) (*Anime, error) {
	record, err := service.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("no anime with name")
		}
		return nil, err
	}
	return record, nil
}

// # Mutations
//
// Every mutation runs validate → map → persist inside a single transaction:
// either the full read-modify-write sequence commits, or nothing is persisted.

// Create validates the request, maps it to an entity, and persists it.
// The server-assigned ID is written back into the returned entity.
func (service *Service) Create(ctx context.Context, request CreateRequest) (*Anime, error) {
	if err := validateWrite(request.Name, request.NumberOfEpisodes, request.URI); err != nil {
		return nil, err
	}

	record := request.ToAnime()
	err := service.repo.InTx(ctx, func(repo Repository) error {
		return repo.Save(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("anime_created",
		slog.Int64("anime_id", record.ID),
		slog.String("name", record.Name),
	)
	return record, nil
}

// Replace loads the existing record named by the request ID and overwrites it
// with the mapped replacement, keeping the existing record's ID (full-replace
// PUT semantics; the body ID cannot relocate a record).
func (service *Service) Replace(ctx context.Context, request ReplaceRequest) error {
	validator := &validate.Validator{}
	validator.Custom(FieldID, request.ID < 1, "Must be a positive integer")
	if err := validator.Err(); err != nil {
		return err
	}
	if err := validateWrite(request.Name, request.NumberOfEpisodes, request.URI); err != nil {
		return err
	}

	err := service.repo.InTx(ctx, func(repo Repository) error {
		existing, err := repo.FindByID(ctx, request.ID)
		if err != nil {
			if errors.Is(err, dberr.ErrNotFound) {
				return apperr.NotFound("no anime with id")
			}
			return err
		}

		replacement := request.ToAnime()
		replacement.ID = existing.ID
		replacement.CreatedAt = existing.CreatedAt
		return repo.Save(ctx, replacement)
	})
	if err != nil {
		return err
	}

	service.logger.Info("anime_replaced", slog.Int64("anime_id", request.ID))
	return nil
}

// Remove loads the existing record by id and deletes it. A missing id is a
// domain not-found error, raised before the delete is attempted.
func (service *Service) Remove(ctx context.Context, id int64) error {
	err := service.repo.InTx(ctx, func(repo Repository) error {
		existing, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, dberr.ErrNotFound) {
				return apperr.NotFound("no anime with id")
			}
			return err
		}
		return repo.Delete(ctx, existing)
	})
	if err != nil {
		return err
	}

	service.logger.Warn("anime_deleted", slog.Int64("anime_id", id))
	return nil
}

// validateWrite applies the shared field rules for both write requests.
// It runs before any persistence attempt and has no side effects.
func validateWrite(name string, numberOfEpisodes int, uri string) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, name).MaxLen(FieldName, name, 200)
	validator.Min(FieldNumberOfEpisodes, numberOfEpisodes, 0)
	if uri != "" {
		validator.URL(FieldURI, uri)
	}

	return validator.Err()
}
