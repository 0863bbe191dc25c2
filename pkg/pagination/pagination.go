// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultSize is the number of items per page if not specified.
	DefaultSize = 10
	// MaxSize is the upper bound for items per page to prevent system abuse.
	MaxSize = 100
	// DefaultPage is the starting page (0-indexed).
	DefaultPage = 0
)

// Params holds the parsed page and size from a request's query string.
type Params struct {
	Page int
	Size int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Size].
func (p Params) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return p.Page * p.Size
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and size.
func NewMeta(page, size, total int) Meta {
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}

	return Meta{
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "size" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultSize], or [MaxSize]. Omitted parameters fall back
// to page 0 with 10 items per page.
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	size := parseIntParam(r, "size", DefaultSize)

	if page < 0 {
		page = DefaultPage
	}

	if size < 1 || size > MaxSize {
		size = DefaultSize
	}

	return Params{Page: page, Size: size}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
