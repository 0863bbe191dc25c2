// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulohdf/animedex/internal/platform/apperr"
	"github.com/paulohdf/animedex/internal/platform/respond"
)

/*
TestError_AppError verifies the normalized envelope for classified errors.
*/
func TestError_AppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
	}{
		{"not_found_maps_to_400", apperr.NotFound("no anime with id"), http.StatusBadRequest, "Not Found"},
		{"unauthorized", apperr.Unauthorized("Invalid credentials"), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", apperr.Forbidden("Insufficient permissions"), http.StatusForbidden, "Forbidden"},
		{"validation", apperr.Validation("Validation failed"), http.StatusBadRequest, "Validation Error"},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/animes", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantTitle, envelope.Title)
			assert.Equal(t, tt.wantStatus, envelope.Status)
			assert.False(t, envelope.Timestamp.IsZero())
		})
	}
}

/*
TestError_UnclassifiedError verifies that bare errors are hidden behind a 500.
*/
func TestError_UnclassifiedError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/animes", nil)

	respond.Error(recorder, request, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	// The underlying cause never reaches the wire.
	assert.Equal(t, "An unexpected error occurred", envelope.Details)
	assert.NotContains(t, recorder.Body.String(), "relation")
}

/*
TestNewErrorEnvelope_Fields verifies the comma-joined validation members.
*/
func TestNewErrorEnvelope_Fields(t *testing.T) {
	appError := apperr.Validation("Validation failed",
		apperr.FieldError{Field: "name", Message: "This field is required"},
		apperr.FieldError{Field: "number_of_episodes", Message: "Must be at least 0"},
	)

	envelope := respond.NewErrorEnvelope(appError)

	assert.Equal(t, "name, number_of_episodes", envelope.Fields)
	assert.Equal(t, "This field is required, Must be at least 0", envelope.Errors)
}

/*
TestSuccessHelpers verifies the success envelopes and status codes.
*/
func TestSuccessHelpers(t *testing.T) {
	// 1. OK wraps data
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"name": "Akira"})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"name":"Akira"}}`, recorder.Body.String())

	// 2. Created
	recorder = httptest.NewRecorder()
	respond.Created(recorder, map[string]int64{"id": 7})
	assert.Equal(t, http.StatusCreated, recorder.Code)

	// 3. NoContent writes an empty body
	recorder = httptest.NewRecorder()
	respond.NoContent(recorder)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}
