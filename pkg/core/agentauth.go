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
	"crypto/subtle"
	"fmt"
	"time"
)

// AuthenticateAgent verifies a host id and API key pair. Unknown hosts and
// key mismatches both fail with ErrAgentAuth so callers cannot probe for
// host existence. The key comparison is constant time.
func (s *Server) AuthenticateAgent(ctx context.Context, hostID, apiKey string) error {
	host, err := s.db.GetHost(ctx, hostID)
	if err != nil {
		return ErrAgentAuth
	}

	stored := host.AgentConfig.APIKey
	if stored == "" {
		return ErrAgentAuth
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(apiKey)) != 1 {
		return ErrAgentAuth
	}

	return nil
}

// Heartbeat authenticates the agent, then records liveness: last_seen, online
// status, and the reported system stats merged into the agent config. The
// stored API key is always preserved.
func (s *Server) Heartbeat(ctx context.Context, hostID, apiKey string, systemStats map[string]interface{}) error {
	if err := s.AuthenticateAgent(ctx, hostID, apiKey); err != nil {
		return err
	}

	host, err := s.db.GetHost(ctx, hostID)
	if err != nil {
		return ErrAgentAuth
	}

	now := time.Now().UTC()

	cfg := host.AgentConfig
	cfg.SystemStats = systemStats
	cfg.LastHeartbeat = &now

	if err := s.db.UpdateHostHeartbeat(ctx, hostID, now, &cfg); err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}

	return nil
}
