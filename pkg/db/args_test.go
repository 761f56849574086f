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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetwatch/fleetwatch/pkg/models"
)

func TestBuildPairingTokenArgs(t *testing.T) {
	expires := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	args, err := buildPairingTokenArgs(&models.PairingToken{
		Token:          "pair-v1:abc",
		OrganizationID: "org-1",
		ExpiresAt:      expires,
	})
	require.NoError(t, err)
	require.Len(t, args, 5)

	assert.Equal(t, "pair-v1:abc", args[0])
	assert.Equal(t, "org-1", args[1])
	assert.Equal(t, expires, args[2])
	assert.Equal(t, false, args[3])
	assert.NotZero(t, args[4])
}

func TestBuildPairingTokenArgsValidation(t *testing.T) {
	_, err := buildPairingTokenArgs(nil)
	assert.ErrorIs(t, err, ErrPairingTokenNil)

	_, err = buildPairingTokenArgs(&models.PairingToken{Token: "  "})
	assert.ErrorIs(t, err, ErrPairingTokenRequired)
}

func TestBuildHostUpsertArgs(t *testing.T) {
	host := &models.Host{
		OrganizationID: "org-1",
		Hostname:       "web-01",
		OSType:         "linux",
		Status:         models.HostStatusOnline,
	}

	args, err := buildHostUpsertArgs(host)
	require.NoError(t, err)
	require.Len(t, args, 13)

	assert.NotEmpty(t, args[0], "a missing id is generated")
	assert.Equal(t, "org-1", args[1])
	assert.Equal(t, "web-01", args[2])
	assert.Equal(t, "online", args[9])
	assert.JSONEq(t, `{}`, string(args[10].([]byte)))
}

func TestBuildHostUpsertArgsValidation(t *testing.T) {
	_, err := buildHostUpsertArgs(nil)
	assert.ErrorIs(t, err, ErrHostNil)

	_, err = buildHostUpsertArgs(&models.Host{Hostname: "web-01"})
	assert.ErrorIs(t, err, ErrHostIdentityMissing)

	_, err = buildHostUpsertArgs(&models.Host{OrganizationID: "org-1"})
	assert.ErrorIs(t, err, ErrHostIdentityMissing)
}

func TestBuildProcessUpsertArgsDefaults(t *testing.T) {
	args, err := buildProcessUpsertArgs(&models.Process{
		HostID: "host-1",
		PID:    4242,
		Name:   "nginx",
	})
	require.NoError(t, err)
	require.Len(t, args, 12)

	assert.Equal(t, "host-1", args[1])
	assert.Equal(t, int32(4242), args[2])
	assert.Equal(t, float64(0), args[7], "cpu defaults to zero")
	assert.Equal(t, float64(0), args[8], "memory defaults to zero")
	assert.Nil(t, args[9], "unset started_at maps to NULL")
}

func TestBuildProcessUpsertArgsValidation(t *testing.T) {
	_, err := buildProcessUpsertArgs(nil)
	assert.ErrorIs(t, err, ErrProcessNil)

	_, err = buildProcessUpsertArgs(&models.Process{PID: 1})
	assert.ErrorIs(t, err, ErrProcessHostRequired)
}

func TestBuildConnectionUpsertArgs(t *testing.T) {
	args, err := buildConnectionUpsertArgs(&models.Connection{
		HostID:        "host-1",
		ProcessID:     "proc-1",
		RemoteIP:      "10.0.0.5",
		RemotePort:    443,
		Protocol:      "tcp",
		BytesSent:     100,
		BytesReceived: 200,
	})
	require.NoError(t, err)
	require.Len(t, args, 16)

	assert.Equal(t, "10.0.0.5", args[5])
	assert.Equal(t, int32(443), args[6])
	assert.Equal(t, int64(100), args[9])
	assert.Equal(t, int64(200), args[10])
}

func TestBuildConnectionUpsertArgsValidation(t *testing.T) {
	_, err := buildConnectionUpsertArgs(nil)
	assert.ErrorIs(t, err, ErrConnectionNil)

	_, err = buildConnectionUpsertArgs(&models.Connection{HostID: "host-1", ProcessID: "proc-1"})
	assert.ErrorIs(t, err, ErrConnectionKeyMissing)
}

func TestBuildNetworkStatsArgsDefaults(t *testing.T) {
	args, err := buildNetworkStatsArgs(&models.NetworkStats{HostID: "host-1"})
	require.NoError(t, err)
	require.Len(t, args, 9)

	assert.Equal(t, "host-1", args[1])
	assert.NotZero(t, args[2], "zero timestamp defaults to now")
	assert.Equal(t, "1m", args[8], "period defaults to 1m")
}

func TestBuildNetworkStatsArgsNil(t *testing.T) {
	_, err := buildNetworkStatsArgs(nil)
	assert.ErrorIs(t, err, ErrNetworkStatsNil)
}

func TestBuildAlertArgs(t *testing.T) {
	args, err := buildAlertArgs(&models.Alert{
		OrganizationID: "org-1",
		HostID:         "host-1",
		Type:           models.AlertTypeBandwidth,
		Severity:       models.AlertSeverityMedium,
		Title:          "High Bandwidth Usage Detected",
		Metadata:       map[string]interface{}{"bytes_total": 115343360},
	})
	require.NoError(t, err)
	require.Len(t, args, 12)

	assert.Equal(t, "bandwidth", args[5])
	assert.Equal(t, "medium", args[6])
	assert.Equal(t, "active", args[9], "status defaults to active")
	assert.JSONEq(t, `{"bytes_total":115343360}`, string(args[10].([]byte)))
}

func TestBuildAlertArgsValidation(t *testing.T) {
	_, err := buildAlertArgs(nil)
	assert.ErrorIs(t, err, ErrAlertNil)

	_, err = buildAlertArgs(&models.Alert{HostID: "host-1"})
	assert.ErrorIs(t, err, ErrAlertKeyMissing)
}
