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

package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fleetwatch/fleetwatch/pkg/models"
)

const clientTimeout = 30 * time.Second

// Client talks to the core service's agent endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client for the core at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: clientTimeout},
	}
}

type pairPayload struct {
	Token    string          `json:"token"`
	HostInfo models.HostInfo `json:"host_info"`
}

type credentialsPayload struct {
	HostID string `json:"host_id"`
	APIKey string `json:"api_key"`
}

type heartbeatPayload struct {
	credentialsPayload
	SystemStats map[string]interface{} `json:"system_stats,omitempty"`
}

type telemetryPayload struct {
	credentialsPayload
	DataType     string                     `json:"data_type"`
	Processes    []models.ProcessReport     `json:"processes,omitempty"`
	Connections  []models.ConnectionReport  `json:"connections,omitempty"`
	NetworkStats *models.NetworkStatsReport `json:"network_stats,omitempty"`
}

// Pair redeems a pairing token for host identity and credential.
func (c *Client) Pair(ctx context.Context, token string, info *models.HostInfo) (*models.PairResult, error) {
	var result models.PairResult

	err := c.post(ctx, "/agent/pair", pairPayload{Token: token, HostInfo: *info}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Heartbeat reports liveness and system stats.
func (c *Client) Heartbeat(ctx context.Context, hostID, apiKey string, stats map[string]interface{}) error {
	return c.post(ctx, "/agent/heartbeat", heartbeatPayload{
		credentialsPayload: credentialsPayload{HostID: hostID, APIKey: apiKey},
		SystemStats:        stats,
	}, nil)
}

// ReportProcesses submits a process batch.
func (c *Client) ReportProcesses(ctx context.Context, hostID, apiKey string, reports []models.ProcessReport) error {
	return c.post(ctx, "/agent/telemetry", telemetryPayload{
		credentialsPayload: credentialsPayload{HostID: hostID, APIKey: apiKey},
		DataType:           "processes",
		Processes:          reports,
	}, nil)
}

// ReportConnections submits a connection batch.
func (c *Client) ReportConnections(ctx context.Context, hostID, apiKey string, reports []models.ConnectionReport) error {
	return c.post(ctx, "/agent/telemetry", telemetryPayload{
		credentialsPayload: credentialsPayload{HostID: hostID, APIKey: apiKey},
		DataType:           "connections",
		Connections:        reports,
	}, nil)
}

// ReportNetworkStats submits one interface counter sample.
func (c *Client) ReportNetworkStats(ctx context.Context, hostID, apiKey string, report *models.NetworkStatsReport) error {
	return c.post(ctx, "/agent/telemetry", telemetryPayload{
		credentialsPayload: credentialsPayload{HostID: hostID, APIKey: apiKey},
		DataType:           "network_stats",
		NetworkStats:       report,
	}, nil)
}

func (c *Client) post(ctx context.Context, path string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("post %s: status %d: %s", path, resp.StatusCode, string(data))
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	return nil
}
