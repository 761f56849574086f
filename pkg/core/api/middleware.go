/*
 * Copyright 2025 FleetWatch Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/fleetwatch/fleetwatch/pkg/core"
	"github.com/fleetwatch/fleetwatch/pkg/core/auth"
)

type contextKey string

const claimsContextKey contextKey = "session-claims"

// sessionMiddleware authenticates operator routes with a bearer JWT and
// stashes the verified claims in the request context.
func (s *APIServer) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.writeError(w, core.ErrUnauthorized)
			return
		}

		claims, err := s.sessions.VerifyToken(r.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			s.writeError(w, core.ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}
