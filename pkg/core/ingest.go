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

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetwatch/fleetwatch/pkg/models"
)

// Telemetry report kinds accepted from agents.
const (
	DataTypeProcesses    = "processes"
	DataTypeConnections  = "connections"
	DataTypeNetworkStats = "network_stats"
)

// IngestProcesses upserts a batch of process reports for a host, keyed by
// (host_id, pid). Missing cpu/memory values default to zero. Entries for the
// same pid within one batch resolve last-one-wins at the store. Returns the
// number of rows upserted.
func (s *Server) IngestProcesses(ctx context.Context, hostID string, reports []models.ProcessReport) (int, error) {
	if len(reports) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	processes := make([]*models.Process, 0, len(reports))

	for i := range reports {
		processes = append(processes, normalizeProcessReport(hostID, &reports[i], now))
	}

	count, err := s.db.UpsertProcesses(ctx, processes)
	if err != nil {
		return 0, fmt.Errorf("%w: processes: %w", ErrIngestFailure, err)
	}

	s.logger.Debug().Str("host_id", hostID).Int("count", count).Msg("processes ingested")

	return count, nil
}

// IngestConnections upserts a batch of connection reports for a host. PIDs
// are resolved against the host's stored process rows in one lookup;
// connections whose PID has no process row are silently dropped. The agent
// must report processes before connections or the connection is lost. Alert
// rules run per surviving connection before persistence.
func (s *Server) IngestConnections(ctx context.Context, hostID string, reports []models.ConnectionReport) (int, error) {
	if len(reports) == 0 {
		return 0, nil
	}

	pidToProcessID, err := s.db.GetProcessIDsByPIDs(ctx, hostID, distinctPIDs(reports))
	if err != nil {
		return 0, fmt.Errorf("%w: connections: resolve pids: %w", ErrIngestFailure, err)
	}

	now := time.Now().UTC()
	connections := make([]*models.Connection, 0, len(reports))

	for i := range reports {
		processID, ok := pidToProcessID[reports[i].ProcessPID]
		if !ok {
			continue
		}

		conn := normalizeConnectionReport(hostID, processID, &reports[i], now)

		// Rules run before persistence; a rule failure degrades to a no-op
		// and never fails the ingest.
		s.alerts.CheckConnection(ctx, hostID, conn)

		connections = append(connections, conn)
	}

	if len(connections) == 0 {
		return 0, nil
	}

	count, err := s.db.UpsertConnections(ctx, connections)
	if err != nil {
		return 0, fmt.Errorf("%w: connections: %w", ErrIngestFailure, err)
	}

	s.logger.Debug().
		Str("host_id", hostID).
		Int("count", count).
		Int("dropped", len(reports)-count).
		Msg("connections ingested")

	return count, nil
}

// IngestNetworkStats appends one network stats sample for the host with the
// fixed "1m" report interval. Missing counters default to zero.
func (s *Server) IngestNetworkStats(ctx context.Context, hostID string, report *models.NetworkStatsReport) error {
	if report == nil {
		return nil
	}

	now := time.Now().UTC()

	timestamp := now
	if report.Timestamp != nil && !report.Timestamp.IsZero() {
		timestamp = report.Timestamp.UTC()
	}

	stats := &models.NetworkStats{
		HostID:           hostID,
		Timestamp:        timestamp,
		BytesIn:          int64Value(report.BytesIn),
		BytesOut:         int64Value(report.BytesOut),
		PacketsIn:        int64Value(report.PacketsIn),
		PacketsOut:       int64Value(report.PacketsOut),
		ConnectionsCount: int32Value(report.ConnectionsCount),
		Period:           "1m",
	}

	if err := s.db.InsertNetworkStats(ctx, stats); err != nil {
		return fmt.Errorf("%w: network_stats: %w", ErrIngestFailure, err)
	}

	return nil
}

func normalizeProcessReport(hostID string, report *models.ProcessReport, now time.Time) *models.Process {
	return &models.Process{
		HostID:      hostID,
		PID:         report.PID,
		Name:        report.Name,
		Path:        report.Path,
		CommandLine: report.CommandLine,
		UserName:    report.UserName,
		CPUPercent:  float64Value(report.CPUPercent),
		MemoryMB:    float64Value(report.MemoryMB),
		StartedAt:   report.StartedAt,
		HashSHA256:  report.HashSHA256,
		UpdatedAt:   now,
	}
}

func normalizeConnectionReport(hostID, processID string, report *models.ConnectionReport, now time.Time) *models.Connection {
	return &models.Connection{
		HostID:          hostID,
		ProcessID:       processID,
		LocalIP:         report.LocalIP,
		LocalPort:       report.LocalPort,
		RemoteIP:        report.RemoteIP,
		RemotePort:      report.RemotePort,
		Protocol:        report.Protocol,
		State:           report.State,
		BytesSent:       int64Value(report.BytesSent),
		BytesReceived:   int64Value(report.BytesReceived),
		PacketsSent:     int64Value(report.PacketsSent),
		PacketsReceived: int64Value(report.PacketsReceived),
		DomainName:      report.DomainName,
		UpdatedAt:       now,
	}
}

func distinctPIDs(reports []models.ConnectionReport) []int32 {
	seen := make(map[int32]struct{}, len(reports))
	pids := make([]int32, 0, len(reports))

	for i := range reports {
		pid := reports[i].ProcessPID
		if _, ok := seen[pid]; ok {
			continue
		}

		seen[pid] = struct{}{}
		pids = append(pids, pid)
	}

	return pids
}

func float64Value(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}

func int64Value(v *int64) int64 {
	if v == nil {
		return 0
	}

	return *v
}

func int32Value(v *int32) int32 {
	if v == nil {
		return 0
	}

	return *v
}
