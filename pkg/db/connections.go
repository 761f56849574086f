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
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fleetwatch/fleetwatch/pkg/models"
)

const upsertConnectionSQL = `
INSERT INTO connections (
	id, host_id, process_id, local_ip, local_port, remote_ip, remote_port,
	protocol, state, bytes_sent, bytes_received, packets_sent,
	packets_received, domain_name, is_blocked, updated_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16
)
ON CONFLICT (host_id, process_id, remote_ip, remote_port) DO UPDATE SET
	local_ip = EXCLUDED.local_ip,
	local_port = EXCLUDED.local_port,
	protocol = EXCLUDED.protocol,
	state = EXCLUDED.state,
	bytes_sent = EXCLUDED.bytes_sent,
	bytes_received = EXCLUDED.bytes_received,
	packets_sent = EXCLUDED.packets_sent,
	packets_received = EXCLUDED.packets_received,
	domain_name = EXCLUDED.domain_name,
	is_blocked = EXCLUDED.is_blocked,
	updated_at = EXCLUDED.updated_at`

// UpsertConnections writes a batch of connection rows keyed by
// (host_id, process_id, remote_ip, remote_port). Counters are absolute
// snapshots, so the upsert replaces rather than accumulates.
func (db *DB) UpsertConnections(ctx context.Context, connections []*models.Connection) (int, error) {
	if len(connections) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}

	for _, conn := range connections {
		args, err := buildConnectionUpsertArgs(conn)
		if err != nil {
			return 0, err
		}

		batch.Queue(upsertConnectionSQL, args...)
	}

	if err := db.sendBatch(ctx, batch, "connections"); err != nil {
		return 0, err
	}

	return batch.Len(), nil
}

func buildConnectionUpsertArgs(conn *models.Connection) ([]interface{}, error) {
	if conn == nil {
		return nil, ErrConnectionNil
	}

	if strings.TrimSpace(conn.HostID) == "" ||
		strings.TrimSpace(conn.ProcessID) == "" ||
		strings.TrimSpace(conn.RemoteIP) == "" {
		return nil, ErrConnectionKeyMissing
	}

	id := strings.TrimSpace(conn.ID)
	if id == "" {
		id = uuid.New().String()
	}

	updatedAt := conn.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = nowUTC()
	}

	return []interface{}{
		id,
		conn.HostID,
		conn.ProcessID,
		conn.LocalIP,
		conn.LocalPort,
		conn.RemoteIP,
		conn.RemotePort,
		conn.Protocol,
		conn.State,
		conn.BytesSent,
		conn.BytesReceived,
		conn.PacketsSent,
		conn.PacketsReceived,
		conn.DomainName,
		conn.IsBlocked,
		updatedAt.UTC(),
	}, nil
}
