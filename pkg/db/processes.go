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
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fleetwatch/fleetwatch/pkg/models"
)

const upsertProcessSQL = `
INSERT INTO processes (
	id, host_id, pid, name, path, command_line, user_name,
	cpu_percent, memory_mb, started_at, hash_sha256, updated_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12
)
ON CONFLICT (host_id, pid) DO UPDATE SET
	name = EXCLUDED.name,
	path = EXCLUDED.path,
	command_line = EXCLUDED.command_line,
	user_name = EXCLUDED.user_name,
	cpu_percent = EXCLUDED.cpu_percent,
	memory_mb = EXCLUDED.memory_mb,
	started_at = EXCLUDED.started_at,
	hash_sha256 = EXCLUDED.hash_sha256,
	updated_at = EXCLUDED.updated_at`

const selectProcessIDsByPIDsSQL = `
SELECT id, pid FROM processes WHERE host_id = $1 AND pid = ANY($2)`

// UpsertProcesses writes a batch of process rows keyed by (host_id, pid) and
// returns the number of rows written. PID reuse across restarts means the
// upsert intentionally overwrites the prior occupant's row.
func (db *DB) UpsertProcesses(ctx context.Context, processes []*models.Process) (int, error) {
	if len(processes) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}

	for _, proc := range processes {
		args, err := buildProcessUpsertArgs(proc)
		if err != nil {
			return 0, err
		}

		batch.Queue(upsertProcessSQL, args...)
	}

	if err := db.sendBatch(ctx, batch, "processes"); err != nil {
		return 0, err
	}

	return batch.Len(), nil
}

// GetProcessIDsByPIDs resolves PIDs to process row ids for one host in a
// single query. PIDs without a stored process row are absent from the result.
func (db *DB) GetProcessIDsByPIDs(ctx context.Context, hostID string, pids []int32) (map[int32]string, error) {
	if len(pids) == 0 {
		return map[int32]string{}, nil
	}

	rows, err := db.pool.Query(ctx, selectProcessIDsByPIDsSQL, hostID, pids)
	if err != nil {
		return nil, fmt.Errorf("%w process ids: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	result := make(map[int32]string, len(pids))

	for rows.Next() {
		var (
			id  string
			pid int32
		)

		if err := rows.Scan(&id, &pid); err != nil {
			return nil, fmt.Errorf("%w process id row: %w", ErrFailedToScan, err)
		}

		result[pid] = id
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w process ids: %w", ErrFailedToQuery, err)
	}

	return result, nil
}

func buildProcessUpsertArgs(proc *models.Process) ([]interface{}, error) {
	if proc == nil {
		return nil, ErrProcessNil
	}

	if strings.TrimSpace(proc.HostID) == "" {
		return nil, ErrProcessHostRequired
	}

	id := strings.TrimSpace(proc.ID)
	if id == "" {
		id = uuid.New().String()
	}

	updatedAt := proc.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = nowUTC()
	}

	return []interface{}{
		id,
		proc.HostID,
		proc.PID,
		proc.Name,
		proc.Path,
		proc.CommandLine,
		proc.UserName,
		proc.CPUPercent,
		proc.MemoryMB,
		toNullableTime(proc.StartedAt),
		proc.HashSHA256,
		updatedAt.UTC(),
	}, nil
}
