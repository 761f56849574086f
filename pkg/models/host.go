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

// HostStatus describes the last known agent state for a host.
type HostStatus string

const (
	HostStatusOnline  HostStatus = "online"
	HostStatusOffline HostStatus = "offline"
	HostStatusError   HostStatus = "error"
)

// AgentConfig holds the per-host agent credential and heartbeat state.
// The API key lives in its own field so heartbeat merges cannot clobber it.
type AgentConfig struct {
	APIKey        string                 `json:"api_key,omitempty"`
	PairedAt      *time.Time             `json:"paired_at,omitempty"`
	LastHeartbeat *time.Time             `json:"last_heartbeat,omitempty"`
	SystemStats   map[string]interface{} `json:"system_stats,omitempty"`
}

// Host is a monitored machine, unique per organization by hostname.
type Host struct {
	ID             string      `json:"id"`
	OrganizationID string      `json:"organization_id"`
	Hostname       string      `json:"hostname"`
	OSType         string      `json:"os_type"`
	OSVersion      string      `json:"os_version"`
	IPAddress      string      `json:"ip_address"`
	MACAddress     string      `json:"mac_address"`
	AgentVersion   string      `json:"agent_version"`
	LastSeen       time.Time   `json:"last_seen"`
	Status         HostStatus  `json:"status"`
	AgentConfig    AgentConfig `json:"agent_config"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// HostInfo is the identifying payload an agent submits when pairing or
// when an operator registers a host by hand.
type HostInfo struct {
	Hostname     string `json:"hostname"`
	OSType       string `json:"os_type"`
	OSVersion    string `json:"os_version,omitempty"`
	IPAddress    string `json:"ip_address,omitempty"`
	MACAddress   string `json:"mac_address,omitempty"`
	AgentVersion string `json:"agent_version,omitempty"`
}
