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

	"github.com/google/uuid"

	"github.com/fleetwatch/fleetwatch/pkg/db"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

const pairingTokenPrefix = "pair-v1:"

// IssueToken mints a single-use pairing token for an organization. The token
// string is unguessable; the TTL comes from config.
func (s *Server) IssueToken(ctx context.Context, organizationID string) (*models.PairingToken, error) {
	now := time.Now().UTC()

	token := &models.PairingToken{
		Token:          pairingTokenPrefix + uuid.NewString(),
		OrganizationID: organizationID,
		ExpiresAt:      now.Add(time.Duration(s.config.PairingTokenTTL)),
		IsUsed:         false,
		CreatedAt:      now,
	}

	if err := s.db.CreatePairingToken(ctx, token); err != nil {
		return nil, fmt.Errorf("issue pairing token: %w", err)
	}

	s.logger.Info().
		Str("organization_id", organizationID).
		Time("expires_at", token.ExpiresAt).
		Msg("pairing token issued")

	return token, nil
}

// RedeemToken exchanges a valid pairing token for a host identity and a fresh
// agent API key. The key is returned exactly once; it is not retrievable
// again, so losing it requires re-pairing.
//
// The mark-used step is a store-level conditional update, which makes the
// whole sequence at-most-once: of two concurrent redemptions, exactly one
// marks the token and the other fails with ErrInvalidToken.
func (s *Server) RedeemToken(ctx context.Context, token string, info *models.HostInfo) (*models.PairResult, error) {
	stored, err := s.db.GetPairingToken(ctx, token)
	if errors.Is(err, db.ErrPairingTokenNotFound) {
		return nil, ErrInvalidToken
	}

	if err != nil {
		return nil, fmt.Errorf("redeem pairing token: %w", err)
	}

	now := time.Now().UTC()

	if !now.Before(stored.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	if stored.IsUsed {
		return nil, ErrInvalidToken
	}

	agentVersion := info.AgentVersion
	if agentVersion == "" {
		agentVersion = "1.0.0"
	}

	host, err := s.db.UpsertHost(ctx, &models.Host{
		OrganizationID: stored.OrganizationID,
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
		return nil, fmt.Errorf("redeem pairing token: upsert host: %w", err)
	}

	won, err := s.db.MarkPairingTokenUsed(ctx, token, host.ID)
	if err != nil {
		return nil, fmt.Errorf("redeem pairing token: mark used: %w", err)
	}

	if !won {
		return nil, ErrInvalidToken
	}

	apiKey := uuid.NewString()
	pairedAt := now

	if err := s.db.UpdateHostAgentConfig(ctx, host.ID, &models.AgentConfig{
		APIKey:   apiKey,
		PairedAt: &pairedAt,
	}); err != nil {
		return nil, fmt.Errorf("redeem pairing token: store credential: %w", err)
	}

	s.logger.Info().
		Str("host_id", host.ID).
		Str("hostname", host.Hostname).
		Str("organization_id", stored.OrganizationID).
		Msg("agent paired")

	s.publishHostPaired(ctx, models.HostPairedEventData{
		HostID:         host.ID,
		OrganizationID: stored.OrganizationID,
		Hostname:       host.Hostname,
		PairedAt:       pairedAt,
	})

	return &models.PairResult{
		HostID:           host.ID,
		APIKey:           apiKey,
		RealtimeEndpoint: s.config.RealtimeEndpoint,
	}, nil
}
