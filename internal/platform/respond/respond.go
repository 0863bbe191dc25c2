// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It is the single translation point from Go errors to the wire format:
// every failure, whatever its origin, leaves the API as the same
// {title, status, details, timestamp, fields, errors} JSON shape.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/paulohdf/animedex/internal/platform/apperr"
	"github.com/paulohdf/animedex/internal/platform/ctxutil"
	"github.com/paulohdf/animedex/pkg/pagination"
)

// SuccessEnvelope is the JSON envelope for successful single-resource responses.
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// PaginatedEnvelope is the JSON envelope for paginated list responses.
type PaginatedEnvelope struct {
	Data interface{}     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the normalized JSON body for every error response.
//
// Fields and Errors are comma-joined per-field lists, present only for
// validation failures.
type ErrorEnvelope struct {
	Title     string    `json:"title"`
	Status    int       `json:"status"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	Fields    string    `json:"fields,omitempty"`
	Errors    string    `json:"errors,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Paginated writes a 200 OK response with paginated data and a metadata block.
func Paginated(writer http.ResponseWriter, data interface{}, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: metadata})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into the normalized JSON API error response.
//
// Unclassified errors are wrapped as internal AppErrors so that no failure
// ever leaves the boundary as a bare message or stack trace.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "unhandled_error_normalized",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("title", appError.Title),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, NewErrorEnvelope(appError))
}

// NewErrorEnvelope builds the normalized wire shape for an [apperr.AppError].
func NewErrorEnvelope(appError *apperr.AppError) ErrorEnvelope {
	envelope := ErrorEnvelope{
		Title:     appError.Title,
		Status:    appError.HTTPStatus,
		Details:   appError.Details,
		Timestamp: time.Now(),
	}

	if len(appError.Fields) > 0 {
		fieldNames := make([]string, 0, len(appError.Fields))
		fieldMessages := make([]string, 0, len(appError.Fields))
		for _, fieldError := range appError.Fields {
			fieldNames = append(fieldNames, fieldError.Field)
			fieldMessages = append(fieldMessages, fieldError.Message)
		}
		envelope.Fields = strings.Join(fieldNames, ", ")
		envelope.Errors = strings.Join(fieldMessages, ", ")
	}

	return envelope
}
