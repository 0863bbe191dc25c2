// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paulohdf/animedex/internal/platform/ctxutil"
	"github.com/paulohdf/animedex/internal/platform/middleware"
	"github.com/paulohdf/animedex/internal/platform/sec"
)

// testPolicy mirrors the catalogue's write-protection rules.
func testPolicy() middleware.Policy {
	return middleware.Policy{
		{Method: http.MethodPost, Pattern: "/animes"}:        sec.RoleAdmin,
		{Method: http.MethodPut, Pattern: "/animes"}:         sec.RoleAdmin,
		{Method: http.MethodDelete, Pattern: "/animes/{id}"}: sec.RoleAdmin,
	}
}

// gatedRequest runs a request through Gate with the given claims (nil = anonymous).
func gatedRequest(t *testing.T, method, path string, claims *sec.AuthClaims) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	handler := middleware.Gate(testPolicy())(next)

	request := httptest.NewRequest(method, path, nil)
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestGate_AnonymousRejected verifies every gated route requires an identity.
*/
func TestGate_AnonymousRejected(t *testing.T) {
	recorder := gatedRequest(t, http.MethodGet, "/animes", nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestGate_RolePolicy verifies the (route, method) → role table end to end.
*/
func TestGate_RolePolicy(t *testing.T) {
	userClaims := &sec.AuthClaims{UserID: "1", Username: "dev", Role: string(sec.RoleUser)}
	adminClaims := &sec.AuthClaims{UserID: "2", Username: "admin", Role: string(sec.RoleAdmin)}

	tests := []struct {
		name       string
		method     string
		path       string
		claims     *sec.AuthClaims
		wantStatus int
	}{
		{"user_can_read_list", http.MethodGet, "/animes", userClaims, http.StatusOK},
		{"user_can_read_by_id", http.MethodGet, "/animes/7", userClaims, http.StatusOK},
		{"user_cannot_create", http.MethodPost, "/animes", userClaims, http.StatusForbidden},
		{"user_cannot_replace", http.MethodPut, "/animes", userClaims, http.StatusForbidden},
		{"user_cannot_delete", http.MethodDelete, "/animes/7", userClaims, http.StatusForbidden},
		{"admin_can_create", http.MethodPost, "/animes", adminClaims, http.StatusOK},
		{"admin_can_replace", http.MethodPut, "/animes", adminClaims, http.StatusOK},
		{"admin_can_delete", http.MethodDelete, "/animes/7", adminClaims, http.StatusOK},
		{"admin_can_read", http.MethodGet, "/animes", adminClaims, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := gatedRequest(t, tt.method, tt.path, tt.claims)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

/*
TestGate_PatternSegments verifies that {id} wildcards match exactly one segment.
*/
func TestGate_PatternSegments(t *testing.T) {
	userClaims := &sec.AuthClaims{UserID: "1", Username: "dev", Role: string(sec.RoleUser)}

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		// "/animes/{id}" matches any id value.
		{"numeric_id_gated", http.MethodDelete, "/animes/42", http.StatusForbidden},
		{"string_id_gated", http.MethodDelete, "/animes/abc", http.StatusForbidden},
		// Extra segments mean no policy match, so only authentication applies.
		{"deeper_path_not_gated", http.MethodDelete, "/animes/42/extra", http.StatusOK},
		{"shorter_path_not_gated", http.MethodDelete, "/animes", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := gatedRequest(t, tt.method, tt.path, userClaims)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

/*
TestRequireAuth verifies the plain authentication barrier.
*/
func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireAuth(next)

	// 1. Anonymous request is rejected
	request := httptest.NewRequest(http.MethodGet, "/animes", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. Authenticated request passes
	claims := &sec.AuthClaims{UserID: "1", Username: "dev", Role: string(sec.RoleUser)}
	request = httptest.NewRequest(http.MethodGet, "/animes", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
