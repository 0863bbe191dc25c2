// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/paulohdf/animedex/internal/platform/apperr"
	"github.com/paulohdf/animedex/internal/platform/ctxutil"
	"github.com/paulohdf/animedex/internal/platform/respond"
	"github.com/paulohdf/animedex/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify bearer tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token
// service implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// CredentialVerifier defines the interface needed to verify basic-auth credentials.
//
// The concrete implementation lives in the auth service and is responsible
// for the username lookup and constant-time password comparison.
type CredentialVerifier interface {
	Authenticate(ctx context.Context, username, password string) (*sec.AuthClaims, error)
}

// Authenticate resolves the caller's identity from the Authorization header.
//
// # Flow
//  1. No header: the request proceeds as anonymous (the gate rejects it later
//     if the route requires an identity).
//  2. 'Basic <credentials>': verify username/password via [CredentialVerifier].
//  3. 'Bearer <token>': parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(credentials CredentialVerifier, tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Scheme Dispatch ────────────────────────────────────────────
			scheme, _, found := strings.Cut(authHeader, " ")
			if !found {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			var claims *sec.AuthClaims
			var err error

			switch strings.ToLower(scheme) {
			case "basic":
				username, password, ok := request.BasicAuth()
				if !ok {
					respond.Error(writer, request, apperr.Unauthorized("Invalid basic credentials encoding"))
					return
				}
				claims, err = credentials.Authenticate(request.Context(), username, password)

			case "bearer":
				tokenStr := strings.TrimSpace(authHeader[len(scheme):])
				claims, err = tokens.VerifyToken(tokenStr)
				if err != nil {
					err = apperr.Unauthorized("Invalid or expired token")
				}

			default:
				err = apperr.Unauthorized("Unsupported authorization scheme")
			}

			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
