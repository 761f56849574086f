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

// Package agent implements the monitoring agent: pairing bootstrap, then a
// periodic collect-and-report loop against the core's agent endpoints.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetwatch/fleetwatch/pkg/logger"
)

const (
	defaultReportInterval = time.Minute
	agentVersion          = "1.0.0"
)

var errNotPaired = errors.New("agent is not paired and no pairing token was given")

// Config tunes the agent.
type Config struct {
	ServerURL      string
	StatePath      string
	PairingToken   string
	ReportInterval time.Duration
}

// Agent collects host telemetry and reports it to the core.
type Agent struct {
	config    Config
	client    *Client
	collector *Collector
	state     *State
	logger    logger.Logger
}

// New builds an agent; pairing happens lazily in Run.
func New(cfg Config, log logger.Logger) *Agent {
	if cfg.ReportInterval == 0 {
		cfg.ReportInterval = defaultReportInterval
	}

	return &Agent{
		config:    cfg,
		client:    NewClient(cfg.ServerURL),
		collector: NewCollector(log),
		logger:    log.WithComponent("agent"),
	}
}

// Run pairs if needed, then loops until the context is canceled. Report
// failures are logged and retried next tick; only pairing failures are fatal.
func (a *Agent) Run(ctx context.Context) error {
	if err := a.ensurePaired(ctx); err != nil {
		return err
	}

	a.logger.Info().Str("host_id", a.state.HostID).Msg("agent running")

	ticker := time.NewTicker(a.config.ReportInterval)
	defer ticker.Stop()

	// First report immediately rather than waiting a full interval.
	a.reportOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.reportOnce(ctx)
		}
	}
}

func (a *Agent) ensurePaired(ctx context.Context) error {
	state, err := LoadState(a.config.StatePath)
	if err != nil {
		return err
	}

	if state != nil && state.HostID != "" && state.APIKey != "" {
		a.state = state
		return nil
	}

	if a.config.PairingToken == "" {
		return errNotPaired
	}

	info, err := a.collector.HostInfo(ctx, agentVersion)
	if err != nil {
		return fmt.Errorf("collect host info: %w", err)
	}

	result, err := a.client.Pair(ctx, a.config.PairingToken, info)
	if err != nil {
		return fmt.Errorf("pair with core: %w", err)
	}

	a.state = &State{HostID: result.HostID, APIKey: result.APIKey}

	if err := SaveState(a.config.StatePath, a.state); err != nil {
		return err
	}

	a.logger.Info().Str("host_id", result.HostID).Msg("agent paired")

	return nil
}

// reportOnce runs one collection cycle. Processes go before connections: the
// core resolves connection ownership against process rows, so the order is a
// correctness requirement, not a preference.
func (a *Agent) reportOnce(ctx context.Context) {
	hostID, apiKey := a.state.HostID, a.state.APIKey

	if err := a.client.Heartbeat(ctx, hostID, apiKey, a.collector.SystemStats(ctx)); err != nil {
		a.logger.Warn().Err(err).Msg("heartbeat failed")
	}

	processes, err := a.collector.Processes(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("process collection failed")
	} else if len(processes) > 0 {
		if err := a.client.ReportProcesses(ctx, hostID, apiKey, processes); err != nil {
			a.logger.Warn().Err(err).Msg("process report failed")
		}
	}

	connections, err := a.collector.Connections(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("connection collection failed")
	} else if len(connections) > 0 {
		if err := a.client.ReportConnections(ctx, hostID, apiKey, connections); err != nil {
			a.logger.Warn().Err(err).Msg("connection report failed")
		}
	}

	stats, err := a.collector.NetworkStats(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("network stats collection failed")
	} else if stats != nil {
		if err := a.client.ReportNetworkStats(ctx, hostID, apiKey, stats); err != nil {
			a.logger.Warn().Err(err).Msg("network stats report failed")
		}
	}
}
