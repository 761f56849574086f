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
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fleetwatch/fleetwatch/pkg/models"
)

const insertPairingTokenSQL = `
INSERT INTO pairing_tokens (token, organization_id, expires_at, is_used, created_at)
VALUES ($1, $2, $3, $4, $5)`

const selectPairingTokenSQL = `
SELECT token, organization_id, expires_at, is_used, used_by_host, used_at, created_at
FROM pairing_tokens
WHERE token = $1`

// markPairingTokenUsedSQL only succeeds while is_used is still false. The
// WHERE clause is the at-most-one-redemption primitive: of two concurrent
// redemptions, exactly one update reports an affected row.
const markPairingTokenUsedSQL = `
UPDATE pairing_tokens
SET is_used = true, used_by_host = $2, used_at = $3
WHERE token = $1 AND is_used = false`

// CreatePairingToken inserts a freshly issued token row.
func (db *DB) CreatePairingToken(ctx context.Context, token *models.PairingToken) error {
	args, err := buildPairingTokenArgs(token)
	if err != nil {
		return err
	}

	if _, err := db.pool.Exec(ctx, insertPairingTokenSQL, args...); err != nil {
		return fmt.Errorf("%w pairing token: %w", ErrFailedToInsert, err)
	}

	return nil
}

// GetPairingToken fetches a token row by its opaque string.
func (db *DB) GetPairingToken(ctx context.Context, token string) (*models.PairingToken, error) {
	row := db.pool.QueryRow(ctx, selectPairingTokenSQL, token)

	var pt models.PairingToken

	err := row.Scan(
		&pt.Token,
		&pt.OrganizationID,
		&pt.ExpiresAt,
		&pt.IsUsed,
		&pt.UsedByHost,
		&pt.UsedAt,
		&pt.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPairingTokenNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w pairing token: %w", ErrFailedToScan, err)
	}

	return &pt, nil
}

// MarkPairingTokenUsed flips is_used via conditional update and reports
// whether this caller won the redemption.
func (db *DB) MarkPairingTokenUsed(ctx context.Context, token, hostID string) (bool, error) {
	tag, err := db.pool.Exec(ctx, markPairingTokenUsedSQL, token, hostID, nowUTC())
	if err != nil {
		return false, fmt.Errorf("%w pairing token: %w", ErrFailedToQuery, err)
	}

	return tag.RowsAffected() == 1, nil
}

func buildPairingTokenArgs(token *models.PairingToken) ([]interface{}, error) {
	if token == nil {
		return nil, ErrPairingTokenNil
	}

	if strings.TrimSpace(token.Token) == "" {
		return nil, ErrPairingTokenRequired
	}

	createdAt := token.CreatedAt
	if createdAt.IsZero() {
		createdAt = nowUTC()
	}

	return []interface{}{
		token.Token,
		token.OrganizationID,
		token.ExpiresAt.UTC(),
		token.IsUsed,
		createdAt.UTC(),
	}, nil
}
