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
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fleetwatch/fleetwatch/pkg/models"
)

const insertAlertSQL = `
INSERT INTO alerts (
	id, organization_id, host_id, process_id, connection_id, type,
	severity, title, description, status, metadata, created_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12
)`

// InsertAlert writes one alert row and returns its id. Alerts are never
// deduplicated here; every qualifying report re-raises.
func (db *DB) InsertAlert(ctx context.Context, alert *models.Alert) (string, error) {
	args, err := buildAlertArgs(alert)
	if err != nil {
		return "", err
	}

	if _, err := db.pool.Exec(ctx, insertAlertSQL, args...); err != nil {
		return "", fmt.Errorf("%w alert: %w", ErrFailedToInsert, err)
	}

	return args[0].(string), nil
}

// ListAlerts returns alerts matching the filter, newest first.
func (db *DB) ListAlerts(ctx context.Context, filter *models.AlertListFilter) ([]*models.Alert, error) {
	query := `
SELECT id, organization_id, host_id, process_id, connection_id, type,
	severity, title, description, status, metadata, resolved_by,
	resolved_at, created_at
FROM alerts`

	var (
		args       []interface{}
		conditions []string
	)

	param := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter != nil {
		if filter.OrganizationID != "" {
			conditions = append(conditions, fmt.Sprintf("organization_id = %s", param(filter.OrganizationID)))
		}

		if filter.HostID != "" {
			conditions = append(conditions, fmt.Sprintf("host_id = %s", param(filter.HostID)))
		}

		if len(filter.Statuses) > 0 {
			statuses := make([]string, 0, len(filter.Statuses))
			for _, st := range filter.Statuses {
				statuses = append(statuses, string(st))
			}

			conditions = append(conditions, fmt.Sprintf("status = ANY(%s)", param(statuses)))
		}
	}

	if len(conditions) > 0 {
		query += "\nWHERE " + strings.Join(conditions, " AND ")
	}

	query += "\nORDER BY created_at DESC"

	limit := 100
	if filter != nil && filter.Limit > 0 {
		limit = filter.Limit
	}

	query += fmt.Sprintf("\nLIMIT %s", param(limit))

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w alerts: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var alerts []*models.Alert

	for rows.Next() {
		var (
			alert       models.Alert
			metadataRaw []byte
		)

		if err := rows.Scan(
			&alert.ID,
			&alert.OrganizationID,
			&alert.HostID,
			&alert.ProcessID,
			&alert.ConnectionID,
			&alert.Type,
			&alert.Severity,
			&alert.Title,
			&alert.Description,
			&alert.Status,
			&metadataRaw,
			&alert.ResolvedBy,
			&alert.ResolvedAt,
			&alert.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w alert row: %w", ErrFailedToScan, err)
		}

		if len(metadataRaw) > 0 {
			if err := json.Unmarshal(metadataRaw, &alert.Metadata); err != nil {
				return nil, fmt.Errorf("%w alert metadata: %w", ErrFailedToScan, err)
			}
		}

		alerts = append(alerts, &alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w alerts: %w", ErrFailedToQuery, err)
	}

	return alerts, nil
}

func buildAlertArgs(alert *models.Alert) ([]interface{}, error) {
	if alert == nil {
		return nil, ErrAlertNil
	}

	if strings.TrimSpace(alert.OrganizationID) == "" || strings.TrimSpace(alert.HostID) == "" {
		return nil, ErrAlertKeyMissing
	}

	id := strings.TrimSpace(alert.ID)
	if id == "" {
		id = uuid.New().String()
	}

	status := alert.Status
	if status == "" {
		status = models.AlertStatusActive
	}

	metadata := alert.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	metadataRaw, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal alert metadata: %w", err)
	}

	createdAt := alert.CreatedAt
	if createdAt.IsZero() {
		createdAt = nowUTC()
	}

	return []interface{}{
		id,
		alert.OrganizationID,
		alert.HostID,
		toNullableString(alert.ProcessID),
		toNullableString(alert.ConnectionID),
		string(alert.Type),
		string(alert.Severity),
		alert.Title,
		alert.Description,
		string(status),
		metadataRaw,
		createdAt.UTC(),
	}, nil
}
