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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetwatch/fleetwatch/pkg/logger"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

func int64ptr(v int64) *int64 { return &v }

// ingestConnection reports a single connection for PID 100 after seeding its
// process row.
func ingestConnection(t *testing.T, server *Server, hostID string, report models.ConnectionReport) {
	t.Helper()

	_, err := server.IngestProcesses(context.Background(), hostID, []models.ProcessReport{
		{PID: report.ProcessPID, Name: "proc"},
	})
	require.NoError(t, err)

	_, err = server.IngestConnections(context.Background(), hostID, []models.ConnectionReport{report})
	require.NoError(t, err)
}

func TestBandwidthAlert(t *testing.T) {
	store := newFakeStore()
	events := &capturingPublisher{}
	server := newTestServer(t, store, WithEventPublisher(events))
	hostID, _ := pairHost(t, server)

	// 60 MiB sent + 50 MiB received crosses the 100 MiB default threshold.
	ingestConnection(t, server, hostID, models.ConnectionReport{
		ProcessPID:    100,
		RemoteIP:      "93.184.216.34",
		RemotePort:    443,
		Protocol:      "tcp",
		BytesSent:     int64ptr(60 * 1024 * 1024),
		BytesReceived: int64ptr(50 * 1024 * 1024),
	})

	alerts := store.alertsByType(models.AlertTypeBandwidth)
	require.Len(t, alerts, 1)

	alert := alerts[0]
	assert.Equal(t, models.AlertSeverityMedium, alert.Severity)
	assert.Equal(t, "High Bandwidth Usage Detected", alert.Title)
	assert.Equal(t, models.AlertStatusActive, alert.Status)
	assert.Equal(t, int64(115343360), alert.Metadata["bytes_total"])
	assert.Equal(t, "93.184.216.34", alert.Metadata["remote_ip"])

	require.Len(t, events.alerts, 1)
	assert.Equal(t, models.AlertTypeBandwidth, events.alerts[0].Type)
}

func TestBandwidthAlertBelowThreshold(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	hostID, _ := pairHost(t, server)

	ingestConnection(t, server, hostID, models.ConnectionReport{
		ProcessPID: 100,
		RemoteIP:   "93.184.216.34",
		RemotePort: 443,
		BytesSent:  int64ptr(1024),
	})

	assert.Empty(t, store.alertsByType(models.AlertTypeBandwidth))
}

func TestSuspiciousConnectionAlert(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	hostID, _ := pairHost(t, server)

	// 192.168.1.0/24 is in the default suspicious ranges.
	ingestConnection(t, server, hostID, models.ConnectionReport{
		ProcessPID: 100,
		RemoteIP:   "192.168.1.50",
		RemotePort: 8443,
		Protocol:   "tcp",
	})

	alerts := store.alertsByType(models.AlertTypeSecurity)
	require.Len(t, alerts, 1)

	alert := alerts[0]
	assert.Equal(t, models.AlertSeverityHigh, alert.Severity)
	assert.Equal(t, "Suspicious Connection Detected", alert.Title)
	assert.Equal(t, "192.168.1.50", alert.Metadata["remote_ip"])
	assert.Equal(t, int32(8443), alert.Metadata["remote_port"])
	assert.Equal(t, "tcp", alert.Metadata["protocol"])
}

func TestSuspiciousConnectionPrefixBoundary(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	hostID, _ := pairHost(t, server)

	// Same first two octets as a flagged range but a different third octet
	// must not match.
	ingestConnection(t, server, hostID, models.ConnectionReport{
		ProcessPID: 100,
		RemoteIP:   "192.168.2.50",
		RemotePort: 8443,
	})

	assert.Empty(t, store.alertsByType(models.AlertTypeSecurity))
}

func TestRulesFireIndependently(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	hostID, _ := pairHost(t, server)

	// Suspicious destination and over-threshold traffic on one connection.
	ingestConnection(t, server, hostID, models.ConnectionReport{
		ProcessPID:    100,
		RemoteIP:      "185.199.108.153",
		RemotePort:    443,
		BytesReceived: int64ptr(200 * 1024 * 1024),
	})

	assert.Len(t, store.alertsByType(models.AlertTypeSecurity), 1)
	assert.Len(t, store.alertsByType(models.AlertTypeBandwidth), 1)
}

func TestAlertsNotDeduplicated(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	hostID, _ := pairHost(t, server)

	report := models.ConnectionReport{
		ProcessPID: 100,
		RemoteIP:   "192.168.1.50",
		RemotePort: 8443,
	}

	ingestConnection(t, server, hostID, report)

	_, err := server.IngestConnections(context.Background(), hostID, []models.ConnectionReport{report})
	require.NoError(t, err)

	assert.Len(t, store.alertsByType(models.AlertTypeSecurity), 2,
		"a persisting condition re-raises on every report")
}

func TestAlertEngineSkipsUnknownHost(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)

	server.alerts.CheckConnection(context.Background(), "no-such-host", &models.Connection{
		RemoteIP:      "192.168.1.50",
		BytesReceived: 200 * 1024 * 1024,
	})

	assert.Empty(t, store.alerts, "unresolvable host is a silent no-op")
}

func TestBandwidthThresholdConfigurable(t *testing.T) {
	store := newFakeStore()

	cfg := &Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Alerts.BandwidthAlertBytes = 1000

	server, err := NewServer(context.Background(), cfg, logger.NewTestLogger(), WithDatabase(store))
	require.NoError(t, err)

	hostID, _ := pairHost(t, server)

	ingestConnection(t, server, hostID, models.ConnectionReport{
		ProcessPID: 100,
		RemoteIP:   "93.184.216.34",
		RemotePort: 443,
		BytesSent:  int64ptr(2000),
	})

	assert.Len(t, store.alertsByType(models.AlertTypeBandwidth), 1)
}
