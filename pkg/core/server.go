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

// Package core implements the agent onboarding, authentication, and telemetry
// ingestion pipeline: pairing-token issuance and redemption, agent credential
// verification, idempotent upsert of telemetry records, and the rule-based
// alert generator.
package core

import (
	"context"
	"fmt"

	"github.com/fleetwatch/fleetwatch/pkg/db"
	"github.com/fleetwatch/fleetwatch/pkg/logger"
)

// Server is the core service: a stateless request-handling layer over the
// store. Concurrency correctness is delegated to the store's per-row atomic
// conditional updates.
type Server struct {
	config *Config
	db     db.Service
	logger logger.Logger
	events EventPublisher
	alerts *AlertEngine
}

// Option customizes a Server during construction.
type Option func(*Server)

// WithDatabase injects a store, bypassing the dial in NewServer. Used by
// tests and by callers that manage the pool themselves.
func WithDatabase(database db.Service) Option {
	return func(s *Server) {
		s.db = database
	}
}

// WithEventPublisher wires the optional change-event stream.
func WithEventPublisher(events EventPublisher) Option {
	return func(s *Server) {
		s.events = events
	}
}

// NewServer builds the core service from config, dialing the store unless one
// is injected.
func NewServer(ctx context.Context, cfg *Config, log logger.Logger, opts ...Option) (*Server, error) {
	normalized := normalizeConfig(cfg)

	server := &Server{
		config: normalized,
		logger: log.WithComponent("core"),
	}

	for _, opt := range opts {
		opt(server)
	}

	if server.db == nil {
		database, err := db.New(ctx, &normalized.Database, log)
		if err != nil {
			return nil, fmt.Errorf("core: open store: %w", err)
		}

		server.db = database
	}

	server.alerts = NewAlertEngine(server.db, &normalized.Alerts, server.logger, server.events)

	return server, nil
}

// Config returns the normalized configuration.
func (s *Server) Config() *Config {
	return s.config
}

// DB exposes the store for the API layer's read paths.
func (s *Server) DB() db.Service {
	return s.db
}

// Close releases the store.
func (s *Server) Close() error {
	return s.db.Close()
}
