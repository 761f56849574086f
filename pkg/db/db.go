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

//go:generate mockgen -destination=mock_db.go -package=db github.com/fleetwatch/fleetwatch/pkg/db Service

// Package db implements the durable store on Postgres via pgx. Concurrency
// correctness is delegated to per-row atomic operations: ON CONFLICT upserts
// and the conditional update used to mark pairing tokens used.
package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetwatch/fleetwatch/pkg/logger"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

// Service is the store surface consumed by the core service layer.
type Service interface {
	Close() error

	// Pairing tokens.
	CreatePairingToken(ctx context.Context, token *models.PairingToken) error
	GetPairingToken(ctx context.Context, token string) (*models.PairingToken, error)
	// MarkPairingTokenUsed atomically flips is_used from false to true and
	// records the redeeming host. It reports false when the token was already
	// used, which is how a concurrent second redemption loses the race.
	MarkPairingTokenUsed(ctx context.Context, token, hostID string) (bool, error)

	// Hosts.
	GetHost(ctx context.Context, hostID string) (*models.Host, error)
	UpsertHost(ctx context.Context, host *models.Host) (*models.Host, error)
	UpdateHostAgentConfig(ctx context.Context, hostID string, cfg *models.AgentConfig) error
	UpdateHostHeartbeat(ctx context.Context, hostID string, seenAt time.Time, cfg *models.AgentConfig) error

	// Telemetry.
	UpsertProcesses(ctx context.Context, processes []*models.Process) (int, error)
	GetProcessIDsByPIDs(ctx context.Context, hostID string, pids []int32) (map[int32]string, error)
	UpsertConnections(ctx context.Context, connections []*models.Connection) (int, error)
	InsertNetworkStats(ctx context.Context, stats *models.NetworkStats) error

	// Alerts.
	InsertAlert(ctx context.Context, alert *models.Alert) (string, error)
	ListAlerts(ctx context.Context, filter *models.AlertListFilter) ([]*models.Alert, error)

	// Operator accounts.
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// DB is the pgx-backed implementation of Service.
type DB struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// New dials Postgres, runs migrations, and returns the store.
func New(ctx context.Context, cfg *models.PostgresDatabase, log logger.Logger) (Service, error) {
	pool, err := NewPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &DB{pool: pool, logger: log.WithComponent("db")}, nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	db.pool.Close()
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
