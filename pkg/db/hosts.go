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

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fleetwatch/fleetwatch/pkg/models"
)

const upsertHostSQL = `
INSERT INTO hosts (
	id, organization_id, hostname, os_type, os_version, ip_address,
	mac_address, agent_version, last_seen, status, agent_config,
	created_at, updated_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13
)
ON CONFLICT (organization_id, hostname) DO UPDATE SET
	os_type = EXCLUDED.os_type,
	os_version = EXCLUDED.os_version,
	ip_address = EXCLUDED.ip_address,
	mac_address = EXCLUDED.mac_address,
	agent_version = EXCLUDED.agent_version,
	last_seen = EXCLUDED.last_seen,
	status = EXCLUDED.status,
	updated_at = EXCLUDED.updated_at
RETURNING id, agent_config, created_at`

const selectHostSQL = `
SELECT id, organization_id, hostname, os_type, os_version, ip_address,
	mac_address, agent_version, last_seen, status, agent_config,
	created_at, updated_at
FROM hosts
WHERE id = $1`

const updateHostAgentConfigSQL = `
UPDATE hosts SET agent_config = $2, updated_at = $3 WHERE id = $1`

const updateHostHeartbeatSQL = `
UPDATE hosts
SET last_seen = $2, status = 'online', agent_config = $3, updated_at = $4
WHERE id = $1`

// GetHost fetches a host row by id.
func (db *DB) GetHost(ctx context.Context, hostID string) (*models.Host, error) {
	row := db.pool.QueryRow(ctx, selectHostSQL, hostID)

	return scanHost(row)
}

// UpsertHost inserts or updates a host keyed by (organization_id, hostname)
// and returns the stored row's identity. The agent_config column is not
// touched on conflict so re-pairing a known host cannot drop its credential
// before a new one is written.
func (db *DB) UpsertHost(ctx context.Context, host *models.Host) (*models.Host, error) {
	args, err := buildHostUpsertArgs(host)
	if err != nil {
		return nil, err
	}

	var (
		id        string
		configRaw []byte
	)

	stored := *host

	row := db.pool.QueryRow(ctx, upsertHostSQL, args...)
	if err := row.Scan(&id, &configRaw, &stored.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w host: %w", ErrFailedToScan, err)
	}

	stored.ID = id

	if err := unmarshalAgentConfig(configRaw, &stored.AgentConfig); err != nil {
		return nil, err
	}

	return &stored, nil
}

// UpdateHostAgentConfig replaces the stored agent_config for a host.
func (db *DB) UpdateHostAgentConfig(ctx context.Context, hostID string, cfg *models.AgentConfig) error {
	raw, err := marshalAgentConfig(cfg)
	if err != nil {
		return err
	}

	tag, err := db.pool.Exec(ctx, updateHostAgentConfigSQL, hostID, raw, nowUTC())
	if err != nil {
		return fmt.Errorf("%w host agent config: %w", ErrFailedToQuery, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrHostNotFound, hostID)
	}

	return nil
}

// UpdateHostHeartbeat records a heartbeat: last_seen, online status, and the
// merged agent_config in one statement.
func (db *DB) UpdateHostHeartbeat(ctx context.Context, hostID string, seenAt time.Time, cfg *models.AgentConfig) error {
	raw, err := marshalAgentConfig(cfg)
	if err != nil {
		return err
	}

	tag, err := db.pool.Exec(ctx, updateHostHeartbeatSQL, hostID, seenAt.UTC(), raw, nowUTC())
	if err != nil {
		return fmt.Errorf("%w host heartbeat: %w", ErrFailedToQuery, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrHostNotFound, hostID)
	}

	return nil
}

func scanHost(row pgx.Row) (*models.Host, error) {
	var (
		host      models.Host
		configRaw []byte
	)

	err := row.Scan(
		&host.ID,
		&host.OrganizationID,
		&host.Hostname,
		&host.OSType,
		&host.OSVersion,
		&host.IPAddress,
		&host.MACAddress,
		&host.AgentVersion,
		&host.LastSeen,
		&host.Status,
		&configRaw,
		&host.CreatedAt,
		&host.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrHostNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w host row: %w", ErrFailedToScan, err)
	}

	if err := unmarshalAgentConfig(configRaw, &host.AgentConfig); err != nil {
		return nil, err
	}

	return &host, nil
}

func buildHostUpsertArgs(host *models.Host) ([]interface{}, error) {
	if host == nil {
		return nil, ErrHostNil
	}

	if strings.TrimSpace(host.OrganizationID) == "" || strings.TrimSpace(host.Hostname) == "" {
		return nil, ErrHostIdentityMissing
	}

	id := strings.TrimSpace(host.ID)
	if id == "" {
		id = uuid.New().String()
	}

	lastSeen := host.LastSeen
	if lastSeen.IsZero() {
		lastSeen = nowUTC()
	}

	status := host.Status
	if status == "" {
		status = models.HostStatusOnline
	}

	configRaw, err := marshalAgentConfig(&host.AgentConfig)
	if err != nil {
		return nil, err
	}

	now := nowUTC()

	return []interface{}{
		id,
		host.OrganizationID,
		host.Hostname,
		host.OSType,
		host.OSVersion,
		host.IPAddress,
		host.MACAddress,
		host.AgentVersion,
		lastSeen.UTC(),
		string(status),
		configRaw,
		now,
		now,
	}, nil
}

func marshalAgentConfig(cfg *models.AgentConfig) ([]byte, error) {
	if cfg == nil {
		return []byte(`{}`), nil
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal agent_config: %w", err)
	}

	return raw, nil
}

func unmarshalAgentConfig(raw []byte, cfg *models.AgentConfig) error {
	if len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("unmarshal agent_config: %w", err)
	}

	return nil
}
