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
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fleetwatch/fleetwatch/pkg/core"
	"github.com/fleetwatch/fleetwatch/pkg/core/auth"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *APIServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps service errors to HTTP statuses. Internal detail stays out
// of the body for 5xx.
func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrTokenExpired),
		errors.Is(err, core.ErrInvalidDataType),
		errors.Is(err, core.ErrMissingOrganization):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, core.ErrAgentAuth),
		errors.Is(err, core.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidSession):
		status = http.StatusUnauthorized
		message = err.Error()
	default:
		s.logger.Error().Err(err).Msg("request failed")
	}

	s.writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer func() { _ = r.Body.Close() }()

	return json.NewDecoder(r.Body).Decode(v)
}
