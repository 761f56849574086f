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

// Package api exposes the core service over HTTP: operator routes under
// /api (session JWT) and agent routes under /agent (host id + API key per
// request).
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fleetwatch/fleetwatch/pkg/core"
	"github.com/fleetwatch/fleetwatch/pkg/core/auth"
	"github.com/fleetwatch/fleetwatch/pkg/httpx"
	"github.com/fleetwatch/fleetwatch/pkg/logger"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// APIServer routes HTTP requests into the core service.
type APIServer struct {
	core        *core.Server
	sessions    *auth.Service
	logger      logger.Logger
	router      *mux.Router
	httpServer  *http.Server
	corsOrigins []string
}

// Option customizes an APIServer during construction.
type Option func(*APIServer)

// WithCORSOrigins restricts browser origins. Empty means allow all.
func WithCORSOrigins(origins []string) Option {
	return func(s *APIServer) {
		s.corsOrigins = origins
	}
}

// NewAPIServer wires routes over the core service and session auth.
func NewAPIServer(coreSvc *core.Server, sessions *auth.Service, log logger.Logger, opts ...Option) *APIServer {
	s := &APIServer{
		core:     coreSvc,
		sessions: sessions,
		logger:   log.WithComponent("api"),
		router:   mux.NewRouter(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()

	return s
}

func (s *APIServer) setupRoutes() {
	s.router.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	s.router.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)

	operator := s.router.PathPrefix("/api").Subrouter()
	operator.Use(s.sessionMiddleware)
	operator.HandleFunc("/pairing-tokens", s.handleIssuePairingToken).Methods(http.MethodPost)
	operator.HandleFunc("/hosts/register", s.handleRegisterHost).Methods(http.MethodPost)
	operator.HandleFunc("/alerts", s.handleListAlerts).Methods(http.MethodGet)

	agent := s.router.PathPrefix("/agent").Subrouter()
	agent.HandleFunc("/pair", s.handlePair).Methods(http.MethodPost)
	agent.HandleFunc("/auth", s.handleAgentAuth).Methods(http.MethodPost)
	agent.HandleFunc("/heartbeat", s.handleHeartbeat).Methods(http.MethodPost)
	agent.HandleFunc("/telemetry", s.handleTelemetry).Methods(http.MethodPost)
}

// Router exposes the configured router for tests.
func (s *APIServer) Router() *mux.Router {
	return s.router
}

// Start serves HTTP until the context is canceled, then shuts down
// gracefully.
func (s *APIServer) Start(ctx context.Context, addr string) error {
	handler := httpx.CommonMiddleware(s.router, s.corsOrigins)
	handler = httpx.RequestLogging(handler, s.logger)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", addr).Msg("http server listening")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		return s.httpServer.Shutdown(shutdownCtx)
	}
}
