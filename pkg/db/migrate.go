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
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations are applied in order on startup. Statements are idempotent so a
// restart against an already-migrated database is a no-op.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		organization_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS pairing_tokens (
		token TEXT PRIMARY KEY,
		organization_id UUID NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		is_used BOOLEAN NOT NULL DEFAULT false,
		used_by_host UUID,
		used_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS hosts (
		id UUID PRIMARY KEY,
		organization_id UUID NOT NULL,
		hostname TEXT NOT NULL,
		os_type TEXT NOT NULL DEFAULT '',
		os_version TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT '',
		mac_address TEXT NOT NULL DEFAULT '',
		agent_version TEXT NOT NULL DEFAULT '',
		last_seen TIMESTAMPTZ NOT NULL DEFAULT now(),
		status TEXT NOT NULL DEFAULT 'offline',
		agent_config JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (organization_id, hostname)
	)`,
	`CREATE TABLE IF NOT EXISTS processes (
		id UUID PRIMARY KEY,
		host_id UUID NOT NULL REFERENCES hosts(id) ON DELETE CASCADE,
		pid INTEGER NOT NULL,
		name TEXT NOT NULL,
		path TEXT NOT NULL DEFAULT '',
		command_line TEXT NOT NULL DEFAULT '',
		user_name TEXT NOT NULL DEFAULT '',
		cpu_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
		memory_mb DOUBLE PRECISION NOT NULL DEFAULT 0,
		started_at TIMESTAMPTZ,
		hash_sha256 TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (host_id, pid)
	)`,
	`CREATE TABLE IF NOT EXISTS connections (
		id UUID PRIMARY KEY,
		host_id UUID NOT NULL REFERENCES hosts(id) ON DELETE CASCADE,
		process_id UUID NOT NULL REFERENCES processes(id) ON DELETE CASCADE,
		local_ip TEXT NOT NULL DEFAULT '',
		local_port INTEGER NOT NULL DEFAULT 0,
		remote_ip TEXT NOT NULL,
		remote_port INTEGER NOT NULL,
		protocol TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		bytes_sent BIGINT NOT NULL DEFAULT 0,
		bytes_received BIGINT NOT NULL DEFAULT 0,
		packets_sent BIGINT NOT NULL DEFAULT 0,
		packets_received BIGINT NOT NULL DEFAULT 0,
		domain_name TEXT NOT NULL DEFAULT '',
		is_blocked BOOLEAN NOT NULL DEFAULT false,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (host_id, process_id, remote_ip, remote_port)
	)`,
	`CREATE TABLE IF NOT EXISTS network_stats (
		id UUID PRIMARY KEY,
		host_id UUID NOT NULL REFERENCES hosts(id) ON DELETE CASCADE,
		timestamp TIMESTAMPTZ NOT NULL,
		bytes_in BIGINT NOT NULL DEFAULT 0,
		bytes_out BIGINT NOT NULL DEFAULT 0,
		packets_in BIGINT NOT NULL DEFAULT 0,
		packets_out BIGINT NOT NULL DEFAULT 0,
		connections_count INTEGER NOT NULL DEFAULT 0,
		period TEXT NOT NULL DEFAULT '1m',
		UNIQUE (host_id, timestamp, period)
	)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id UUID PRIMARY KEY,
		organization_id UUID NOT NULL,
		host_id UUID NOT NULL,
		process_id UUID,
		connection_id UUID,
		type TEXT NOT NULL,
		severity TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		metadata JSONB NOT NULL DEFAULT '{}',
		resolved_by UUID,
		resolved_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_processes_host ON processes (host_id)`,
	`CREATE INDEX IF NOT EXISTS idx_connections_host ON connections (host_id)`,
	`CREATE INDEX IF NOT EXISTS idx_network_stats_host_time ON network_stats (host_id, timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_org_created ON alerts (organization_id, created_at DESC)`,
}

// RunMigrations applies the schema statements in order.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: migration %d: %w", ErrFailedToInit, i, err)
		}
	}

	return nil
}
