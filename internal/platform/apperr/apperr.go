// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

/*
Package apperr defines the centralized error handling framework for Animedex.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a human-readable Title and client-safe Details.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the canonical error type for the Animedex API.
//
// It carries an HTTP status code, a category title, a client-safe details
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Title is a short, category-appropriate human summary (e.g. "Not Found").
	Title string `json:"title"`
	// Details is a human-readable description safe to return to the client.
	Details string `json:"details"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Fields holds per-field validation errors for Validation Error responses.
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe details.
func (e *AppError) Error() string { return e.Details }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 400 [AppError] for an absent resource.
//
// The API contract returns Bad Request (not 404) when a referenced entity
// is missing, so the status is intentionally 400.
//
// Example:
//
//	apperr.NotFound("no anime with id")
func NotFound(details string) *AppError {
	return &AppError{
		Title:      "Not Found",
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(details string) *AppError {
	return &AppError{
		Title:      "Unauthorized",
		Details:    details,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(details string) *AppError {
	return &AppError{
		Title:      "Forbidden",
		Details:    details,
		HTTPStatus: http.StatusForbidden,
	}
}

// Validation creates a 400 [AppError] with per-field details.
func Validation(details string, fields ...FieldError) *AppError {
	return &AppError{
		Title:      "Validation Error",
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Title:      "Internal Server Error",
		Details:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Persistence creates a 500 [AppError] for a store-level failure.
// The cause is surfaced to logs as-is; the client sees a stable message.
func Persistence(cause error) *AppError {
	return &AppError{
		Title:      "Persistence Error",
		Details:    "The operation could not be persisted",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
