// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package anime_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulohdf/animedex/internal/anime"
	"github.com/paulohdf/animedex/internal/platform/apperr"
	"github.com/paulohdf/animedex/internal/platform/middleware"
	"github.com/paulohdf/animedex/internal/platform/sec"
)

// stubCredentials verifies basic-auth pairs against a fixed table,
// standing in for the real auth service.
type stubCredentials struct{}

func (stubCredentials) Authenticate(_ context.Context, username, password string) (*sec.AuthClaims, error) {
	accounts := map[string]struct {
		password string
		role     sec.UserRole
	}{
		"dev":   {"devEnvironment", sec.RoleUser},
		"admin": {"admin", sec.RoleAdmin},
	}

	account, ok := accounts[username]
	if !ok || account.password != password {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	return &sec.AuthClaims{UserID: "1", Username: username, Role: string(account.role)}, nil
}

// stubTokens rejects every bearer token; these tests authenticate with basic auth.
type stubTokens struct{}

func (stubTokens) VerifyToken(string) (*sec.AuthClaims, error) {
	return nil, apperr.Unauthorized("Invalid or expired token")
}

// newTestRouter assembles the catalogue routes behind the same
// authentication and gate middleware the server mounts.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	repo := anime.NewInMemoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := anime.NewHandler(anime.NewService(repo, logger))

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(stubCredentials{}, stubTokens{}))
	router.Route("/animes", func(catalogue chi.Router) {
		catalogue.Use(middleware.Gate(anime.Policy()))
		catalogue.Mount("/", handler.Routes())
	})
	return router
}

// doJSON performs a request with optional basic auth and JSON body.
func doJSON(t *testing.T, router http.Handler, method, target, username, password string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, target, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if username != "" {
		request.SetBasicAuth(username, password)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

// decodeData unmarshals the "data" member of a success envelope into out.
func decodeData(t *testing.T, recorder *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

/*
TestHTTP_AnonymousRejected verifies every catalogue route is behind the gate.
*/
func TestHTTP_AnonymousRejected(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/animes"},
		{http.MethodGet, "/animes/list"},
		{http.MethodGet, "/animes/1"},
		{http.MethodGet, "/animes/search?name=x"},
		{http.MethodPost, "/animes"},
		{http.MethodPut, "/animes"},
		{http.MethodDelete, "/animes/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+"_"+tt.target, func(t *testing.T) {
			recorder := doJSON(t, router, tt.method, tt.target, "", "", nil)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

/*
TestHTTP_NonAdminCannotMutate verifies that USER-role callers can read but
never write.
*/
func TestHTTP_NonAdminCannotMutate(t *testing.T) {
	router := newTestRouter(t)

	// Seed one record as admin
	created := doJSON(t, router, http.MethodPost, "/animes", "admin", "admin",
		anime.CreateRequest{Name: "Akira", NumberOfEpisodes: 1})
	require.Equal(t, http.StatusCreated, created.Code)

	// Reads succeed
	assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/animes", "dev", "devEnvironment", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/animes/list", "dev", "devEnvironment", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/animes/1", "dev", "devEnvironment", nil).Code)

	// Writes are forbidden
	post := doJSON(t, router, http.MethodPost, "/animes", "dev", "devEnvironment",
		anime.CreateRequest{Name: "Paprika", NumberOfEpisodes: 1})
	assert.Equal(t, http.StatusForbidden, post.Code)

	put := doJSON(t, router, http.MethodPut, "/animes", "dev", "devEnvironment",
		anime.ReplaceRequest{ID: 1, Name: "Akira (1988)", NumberOfEpisodes: 1})
	assert.Equal(t, http.StatusForbidden, put.Code)

	del := doJSON(t, router, http.MethodDelete, "/animes/1", "dev", "devEnvironment", nil)
	assert.Equal(t, http.StatusForbidden, del.Code)

	var envelope struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal(del.Body.Bytes(), &envelope))
	assert.Equal(t, "Forbidden", envelope.Title)
	assert.Equal(t, http.StatusForbidden, envelope.Status)
}

/*
TestHTTP_WrongPassword verifies invalid basic credentials are rejected.
*/
func TestHTTP_WrongPassword(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/animes", "dev", "wrong", nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHTTP_CRUDLifecycle exercises the full create → read → replace → delete flow
as an ADMIN caller.
*/
func TestHTTP_CRUDLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// 1. Create
	created := doJSON(t, router, http.MethodPost, "/animes", "admin", "admin",
		anime.CreateRequest{Name: "Steins Gate", NumberOfEpisodes: 24, URI: "https://example.com/steins-gate"})
	require.Equal(t, http.StatusCreated, created.Code)

	var record anime.Anime
	decodeData(t, created, &record)
	require.Positive(t, record.ID)
	assert.Equal(t, "Steins Gate", record.Name)

	// 2. Read back by id
	fetched := doJSON(t, router, http.MethodGet, fmt.Sprintf("/animes/%d", record.ID), "admin", "admin", nil)
	require.Equal(t, http.StatusOK, fetched.Code)

	var found anime.Anime
	decodeData(t, fetched, &found)
	assert.Equal(t, record.ID, found.ID)

	// 3. Search by name
	searched := doJSON(t, router, http.MethodGet, "/animes/search?name=Steins+Gate", "admin", "admin", nil)
	require.Equal(t, http.StatusOK, searched.Code)

	// 4. Replace
	replaced := doJSON(t, router, http.MethodPut, "/animes", "admin", "admin",
		anime.ReplaceRequest{ID: record.ID, Name: "Steins Gate 0", NumberOfEpisodes: 23})
	require.Equal(t, http.StatusNoContent, replaced.Code)

	fetched = doJSON(t, router, http.MethodGet, fmt.Sprintf("/animes/%d", record.ID), "admin", "admin", nil)
	require.Equal(t, http.StatusOK, fetched.Code)
	decodeData(t, fetched, &found)
	assert.Equal(t, "Steins Gate 0", found.Name)
	assert.Equal(t, 23, found.NumberOfEpisodes)

	// 5. Delete
	deleted := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/animes/%d", record.ID), "admin", "admin", nil)
	require.Equal(t, http.StatusNoContent, deleted.Code)

	// 6. Gone: the normalized not-found error
	gone := doJSON(t, router, http.MethodGet, fmt.Sprintf("/animes/%d", record.ID), "admin", "admin", nil)
	require.Equal(t, http.StatusBadRequest, gone.Code)

	var envelope struct {
		Title     string `json:"title"`
		Status    int    `json:"status"`
		Details   string `json:"details"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(gone.Body.Bytes(), &envelope))
	assert.Equal(t, "Not Found", envelope.Title)
	assert.Equal(t, http.StatusBadRequest, envelope.Status)
	assert.Equal(t, "no anime with id", envelope.Details)
	assert.NotEmpty(t, envelope.Timestamp)
}

/*
TestHTTP_ValidationEnvelope verifies the comma-joined fields/errors members
on validation failures.
*/
func TestHTTP_ValidationEnvelope(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/animes", "admin", "admin",
		anime.CreateRequest{Name: "", NumberOfEpisodes: -2})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
		Fields string `json:"fields"`
		Errors string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Equal(t, "Validation Error", envelope.Title)
	assert.Equal(t, http.StatusBadRequest, envelope.Status)
	assert.Contains(t, envelope.Fields, anime.FieldName)
	assert.Contains(t, envelope.Fields, anime.FieldNumberOfEpisodes)
	assert.NotEmpty(t, envelope.Errors)
}

/*
TestHTTP_SearchRequiresName verifies the query parameter precondition.
*/
func TestHTTP_SearchRequiresName(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/animes/search", "dev", "devEnvironment", nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHTTP_InvalidPathID verifies non-numeric path ids fail validation.
*/
func TestHTTP_InvalidPathID(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/animes/not-a-number", "dev", "devEnvironment", nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHTTP_PaginationEnvelope verifies the paged listing defaults and metadata.
*/
func TestHTTP_PaginationEnvelope(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 12; i++ {
		recorder := doJSON(t, router, http.MethodPost, "/animes", "admin", "admin",
			anime.CreateRequest{Name: fmt.Sprintf("Show %02d", i), NumberOfEpisodes: 12})
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	// Default page: 0-indexed, 10 items
	recorder := doJSON(t, router, http.MethodGet, "/animes", "dev", "devEnvironment", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []anime.Anime `json:"data"`
		Meta struct {
			Page       int `json:"page"`
			Size       int `json:"size"`
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Len(t, envelope.Data, 10)
	assert.Equal(t, 0, envelope.Meta.Page)
	assert.Equal(t, 10, envelope.Meta.Size)
	assert.Equal(t, 12, envelope.Meta.Total)
	assert.Equal(t, 2, envelope.Meta.TotalPages)

	// Second page holds the remainder
	recorder = doJSON(t, router, http.MethodGet, "/animes?page=1", "dev", "devEnvironment", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
	assert.Equal(t, 1, envelope.Meta.Page)
}
