// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/paulohdf/animedex/internal/platform/apperr"
	"github.com/paulohdf/animedex/internal/platform/ctxutil"
	"github.com/paulohdf/animedex/internal/platform/respond"
	"github.com/paulohdf/animedex/internal/platform/sec"
)

// # Authorization Policy

// Route identifies an endpoint by HTTP method and path pattern.
//
// Pattern segments wrapped in braces (e.g. "/animes/{id}") match any single
// path segment, mirroring the router's parameter syntax.
type Route struct {
	Method  string
	Pattern string
}

// Policy is an explicit authorization table: each listed route requires the
// caller to hold at least the mapped role. Routes not listed require only an
// authenticated identity.
type Policy map[Route]sec.UserRole

// requiredRole resolves the minimum role for a request, if any rule matches.
func (p Policy) requiredRole(method, path string) (sec.UserRole, bool) {
	for route, role := range p {
		if route.Method == method && patternMatches(route.Pattern, path) {
			return role, true
		}
	}
	return "", false
}

// patternMatches compares a path against a pattern segment by segment.
func patternMatches(pattern, path string) bool {
	patternSegments := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSegments := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternSegments) != len(pathSegments) {
		return false
	}

	for i, segment := range patternSegments {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			continue
		}
		if segment != pathSegments[i] {
			return false
		}
	}
	return true
}

// # Authorization Gate

// Gate blocks requests before handler dispatch based on the [Policy] table.
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context. If missing, abort with 401:
//     every gated route requires at least an authenticated identity.
//  2. If a policy rule matches (route, method), check the caller's role using
//     [sec.UserRole.AtLeast]. If insufficient, abort with HTTP 403 Forbidden.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. The gate runs before
// any handler, so a forbidden request produces no partial side effects.
func Gate(policy Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if role, gated := policy.requiredRole(request.Method, request.URL.Path); gated {
				userRole := sec.UserRole(claims.Role)
				if !userRole.AtLeast(role) {
					respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
					return
				}
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// Equivalent to a [Gate] with an empty policy; provided for routes that have
// no role-gated entries at all.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
