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
	"net/http"
	"strconv"
	"time"

	"github.com/fleetwatch/fleetwatch/pkg/core"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type issueTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type registerHostRequest struct {
	models.HostInfo
}

type registerHostResponse struct {
	HostID string `json:"host_id"`
}

type pairRequest struct {
	Token    string          `json:"token"`
	HostInfo models.HostInfo `json:"host_info"`
}

type agentCredentials struct {
	HostID string `json:"host_id"`
	APIKey string `json:"api_key"`
}

type heartbeatRequest struct {
	agentCredentials
	SystemStats map[string]interface{} `json:"system_stats,omitempty"`
}

type telemetryRequest struct {
	agentCredentials
	DataType     string                     `json:"data_type"`
	Processes    []models.ProcessReport     `json:"processes,omitempty"`
	Connections  []models.ConnectionReport  `json:"connections,omitempty"`
	NetworkStats *models.NetworkStatsReport `json:"network_stats,omitempty"`
}

type telemetryResponse struct {
	Processed int `json:"processed"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (s *APIServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, err := s.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, token)
}

func (s *APIServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, err := s.sessions.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, token)
}

func (s *APIServer) handleIssuePairingToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeError(w, core.ErrUnauthorized)
		return
	}

	if claims.OrganizationID == "" {
		s.writeError(w, core.ErrMissingOrganization)
		return
	}

	token, err := s.core.IssueToken(r.Context(), claims.OrganizationID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, issueTokenResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt.Format(time.RFC3339),
	})
}

func (s *APIServer) handleRegisterHost(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeError(w, core.ErrUnauthorized)
		return
	}

	var req registerHostRequest
	if err := decodeJSON(r, &req); err != nil || req.Hostname == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "hostname is required"})
		return
	}

	host, err := s.core.RegisterHost(r.Context(), claims.Subject, &req.HostInfo)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, registerHostResponse{HostID: host.ID})
}

func (s *APIServer) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeError(w, core.ErrUnauthorized)
		return
	}

	filter := &models.AlertListFilter{
		OrganizationID: claims.OrganizationID,
		HostID:         r.URL.Query().Get("host_id"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}

		filter.Limit = limit
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Statuses = []models.AlertStatus{models.AlertStatus(status)}
	}

	alerts, err := s.core.DB().ListAlerts(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, alerts)
}

func (s *APIServer) handlePair(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := decodeJSON(r, &req); err != nil || req.Token == "" || req.HostInfo.Hostname == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "token and host_info.hostname are required"})
		return
	}

	result, err := s.core.RedeemToken(r.Context(), req.Token, &req.HostInfo)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *APIServer) handleAgentAuth(w http.ResponseWriter, r *http.Request) {
	var req agentCredentials
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.core.AuthenticateAgent(r.Context(), req.HostID, req.APIKey); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{Status: "authenticated"})
}

func (s *APIServer) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	var req heartbeatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.core.Heartbeat(r.Context(), req.HostID, req.APIKey, req.SystemStats); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *APIServer) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	var req telemetryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.core.AuthenticateAgent(r.Context(), req.HostID, req.APIKey); err != nil {
		s.writeError(w, err)
		return
	}

	var (
		processed int
		err       error
	)

	switch req.DataType {
	case core.DataTypeProcesses:
		processed, err = s.core.IngestProcesses(r.Context(), req.HostID, req.Processes)
	case core.DataTypeConnections:
		processed, err = s.core.IngestConnections(r.Context(), req.HostID, req.Connections)
	case core.DataTypeNetworkStats:
		err = s.core.IngestNetworkStats(r.Context(), req.HostID, req.NetworkStats)
		if err == nil && req.NetworkStats != nil {
			processed = 1
		}
	default:
		err = core.ErrInvalidDataType
	}

	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, telemetryResponse{Processed: processed})
}
