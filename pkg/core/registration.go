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

package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetwatch/fleetwatch/pkg/db"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

// RegisterHost creates or refreshes a host row on behalf of an operator
// session. The host lands in the user's organization; users without one
// cannot register hosts. A low-severity welcome alert is raised only when the
// host row is newly created, not on re-registration.
func (s *Server) RegisterHost(ctx context.Context, userID string, info *models.HostInfo) (*models.Host, error) {
	user, err := s.db.GetUser(ctx, userID)
	if errors.Is(err, db.ErrUserNotFound) {
		return nil, ErrMissingOrganization
	}

	if err != nil {
		return nil, fmt.Errorf("register host: load user: %w", err)
	}

	if user.OrganizationID == "" {
		return nil, ErrMissingOrganization
	}

	agentVersion := info.AgentVersion
	if agentVersion == "" {
		agentVersion = "1.0.0"
	}

	now := time.Now().UTC()

	host, err := s.db.UpsertHost(ctx, &models.Host{
		OrganizationID: user.OrganizationID,
		Hostname:       info.Hostname,
		OSType:         info.OSType,
		OSVersion:      info.OSVersion,
		IPAddress:      info.IPAddress,
		MACAddress:     info.MACAddress,
		AgentVersion:   agentVersion,
		LastSeen:       now,
		Status:         models.HostStatusOnline,
	})
	if err != nil {
		return nil, fmt.Errorf("register host: %w", err)
	}

	// created_at is written only on first insert, so a returned value older
	// than this request means the row already existed.
	if host.CreatedAt.Before(now) {
		s.logger.Info().
			Str("host_id", host.ID).
			Str("hostname", host.Hostname).
			Msg("host re-registered")

		return host, nil
	}

	s.logger.Info().
		Str("host_id", host.ID).
		Str("hostname", host.Hostname).
		Str("organization_id", user.OrganizationID).
		Msg("host registered")

	welcome := &models.Alert{
		OrganizationID: user.OrganizationID,
		HostID:         host.ID,
		Type:           models.AlertTypeAnomaly,
		Severity:       models.AlertSeverityLow,
		Title:          fmt.Sprintf("New Host Connected: %s", host.Hostname),
		Description:    fmt.Sprintf("Host %s (%s) started monitoring", host.Hostname, host.OSType),
		Status:         models.AlertStatusActive,
		CreatedAt:      now,
	}

	if _, err := s.db.InsertAlert(ctx, welcome); err != nil {
		// The host row exists; a lost welcome alert is not worth failing
		// registration over.
		s.logger.Warn().Err(err).Str("host_id", host.ID).Msg("failed to insert welcome alert")
	}

	return host, nil
}
