// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

/*
Package anime implements the catalogue of Anime records.

It defines the core domain entity, the write-request DTOs, and the
validation → mapping → persistence pipeline behind the /animes endpoints.

# Architecture

This layer is the "Truth" of the catalogue. The entity defined here has no
external dependencies; handlers translate HTTP to service calls, the service
owns validation and transactional boundaries, and stores own persistence.
*/
package anime

import "time"

// # Domain Entities

// Anime represents a persisted catalogue record.
//
// ID is server-generated and immutable after creation. Records are never
// soft-deleted.
type Anime struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	NumberOfEpisodes int       `json:"number_of_episodes"`
	URI              string    `json:"uri,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// # Write Requests

// CreateRequest is the DTO for POST /animes.
type CreateRequest struct {
	Name             string `json:"name"`
	NumberOfEpisodes int    `json:"number_of_episodes"`
	URI              string `json:"uri"`
}

// ReplaceRequest is the DTO for PUT /animes (full-record replace).
//
// The body ID names the record being replaced; the stored record always
// keeps its own ID regardless of what the payload carries.
type ReplaceRequest struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumberOfEpisodes int    `json:"number_of_episodes"`
	URI              string `json:"uri"`
}

// # Field Identifiers

// Global field names for validation in the catalogue domain.
const (
	FieldID               = "id"
	FieldName             = "name"
	FieldNumberOfEpisodes = "number_of_episodes"
	FieldURI              = "uri"
)
