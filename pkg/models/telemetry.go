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

package models

import "time"

// Process is a normalized process record, unique per (host_id, pid). A PID is
// reused across process restarts on the same host, so an upsert overwrites the
// prior occupant's row.
type Process struct {
	ID          string     `json:"id"`
	HostID      string     `json:"host_id"`
	PID         int32      `json:"pid"`
	Name        string     `json:"name"`
	Path        string     `json:"path,omitempty"`
	CommandLine string     `json:"command_line,omitempty"`
	UserName    string     `json:"user_name,omitempty"`
	CPUPercent  float64    `json:"cpu_percent"`
	MemoryMB    float64    `json:"memory_mb"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	HashSHA256  string     `json:"hash_sha256,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Connection is a normalized network connection owned by a process, unique per
// (host_id, process_id, remote_ip, remote_port). Byte and packet counters are
// absolute snapshots from the agent, not deltas.
type Connection struct {
	ID              string    `json:"id"`
	HostID          string    `json:"host_id"`
	ProcessID       string    `json:"process_id"`
	LocalIP         string    `json:"local_ip"`
	LocalPort       int32     `json:"local_port"`
	RemoteIP        string    `json:"remote_ip"`
	RemotePort      int32     `json:"remote_port"`
	Protocol        string    `json:"protocol"`
	State           string    `json:"state"`
	BytesSent       int64     `json:"bytes_sent"`
	BytesReceived   int64     `json:"bytes_received"`
	PacketsSent     int64     `json:"packets_sent"`
	PacketsReceived int64     `json:"packets_received"`
	DomainName      string    `json:"domain_name,omitempty"`
	IsBlocked       bool      `json:"is_blocked"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NetworkStats is one append-only sample of host-level interface counters.
type NetworkStats struct {
	ID               string    `json:"id"`
	HostID           string    `json:"host_id"`
	Timestamp        time.Time `json:"timestamp"`
	BytesIn          int64     `json:"bytes_in"`
	BytesOut         int64     `json:"bytes_out"`
	PacketsIn        int64     `json:"packets_in"`
	PacketsOut       int64     `json:"packets_out"`
	ConnectionsCount int32     `json:"connections_count"`
	Period           string    `json:"period"`
}

// ProcessReport is one process entry in an agent telemetry batch.
type ProcessReport struct {
	PID         int32      `json:"pid"`
	Name        string     `json:"name"`
	Path        string     `json:"path,omitempty"`
	CommandLine string     `json:"command_line,omitempty"`
	UserName    string     `json:"user_name,omitempty"`
	CPUPercent  *float64   `json:"cpu_percent,omitempty"`
	MemoryMB    *float64   `json:"memory_mb,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	HashSHA256  string     `json:"hash_sha256,omitempty"`
}

// ConnectionReport is one connection entry in an agent telemetry batch. The
// owning process is referenced by PID; the ingestor resolves it against the
// process rows already reported for the host.
type ConnectionReport struct {
	ProcessPID      int32  `json:"process_pid"`
	LocalIP         string `json:"local_ip"`
	LocalPort       int32  `json:"local_port"`
	RemoteIP        string `json:"remote_ip"`
	RemotePort      int32  `json:"remote_port"`
	Protocol        string `json:"protocol"`
	State           string `json:"state"`
	BytesSent       *int64 `json:"bytes_sent,omitempty"`
	BytesReceived   *int64 `json:"bytes_received,omitempty"`
	PacketsSent     *int64 `json:"packets_sent,omitempty"`
	PacketsReceived *int64 `json:"packets_received,omitempty"`
	DomainName      string `json:"domain_name,omitempty"`
}

// NetworkStatsReport is the host-level counter sample in an agent batch.
type NetworkStatsReport struct {
	Timestamp        *time.Time `json:"timestamp,omitempty"`
	BytesIn          *int64     `json:"bytes_in,omitempty"`
	BytesOut         *int64     `json:"bytes_out,omitempty"`
	PacketsIn        *int64     `json:"packets_in,omitempty"`
	PacketsOut       *int64     `json:"packets_out,omitempty"`
	ConnectionsCount *int32     `json:"connections_count,omitempty"`
}
