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
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetwatch/fleetwatch/pkg/logger"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	mu     sync.Mutex
	paired []models.HostPairedEventData
	alerts []models.AlertEventData
}

func (c *capturingPublisher) PublishHostPaired(_ context.Context, data models.HostPairedEventData) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.paired = append(c.paired, data)

	return nil
}

func (c *capturingPublisher) PublishAlertRaised(_ context.Context, data models.AlertEventData) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.alerts = append(c.alerts, data)

	return nil
}

func newTestServer(t *testing.T, store *fakeStore, opts ...Option) *Server {
	t.Helper()

	cfg := &Config{}
	cfg.Auth.JWTSecret = "test-secret"

	opts = append([]Option{WithDatabase(store)}, opts...)

	server, err := NewServer(context.Background(), cfg, logger.NewTestLogger(), opts...)
	require.NoError(t, err)

	return server
}

func testHostInfo() *models.HostInfo {
	return &models.HostInfo{
		Hostname:     "web-01",
		OSType:       "linux",
		OSVersion:    "6.8",
		IPAddress:    "10.1.2.3",
		AgentVersion: "1.2.0",
	}
}

func TestIssueToken(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)

	token, err := server.IssueToken(context.Background(), "org-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(token.Token, "pair-v1:"))
	assert.Equal(t, "org-1", token.OrganizationID)
	assert.False(t, token.IsUsed)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, time.Minute,
		"default TTL is 15 minutes")
}

func TestRedeemToken(t *testing.T) {
	store := newFakeStore()
	events := &capturingPublisher{}
	server := newTestServer(t, store, WithEventPublisher(events))

	token, err := server.IssueToken(context.Background(), "org-1")
	require.NoError(t, err)

	result, err := server.RedeemToken(context.Background(), token.Token, testHostInfo())
	require.NoError(t, err)

	assert.NotEmpty(t, result.HostID)
	assert.NotEmpty(t, result.APIKey)

	host, err := store.GetHost(context.Background(), result.HostID)
	require.NoError(t, err)

	assert.Equal(t, "org-1", host.OrganizationID)
	assert.Equal(t, models.HostStatusOnline, host.Status)
	assert.Equal(t, result.APIKey, host.AgentConfig.APIKey, "credential is persisted")
	require.NotNil(t, host.AgentConfig.PairedAt)

	stored, err := store.GetPairingToken(context.Background(), token.Token)
	require.NoError(t, err)
	assert.True(t, stored.IsUsed)
	require.NotNil(t, stored.UsedByHost)
	assert.Equal(t, result.HostID, *stored.UsedByHost)

	require.Len(t, events.paired, 1)
	assert.Equal(t, result.HostID, events.paired[0].HostID)
}

func TestRedeemTokenTwiceFails(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)

	token, err := server.IssueToken(context.Background(), "org-1")
	require.NoError(t, err)

	_, err = server.RedeemToken(context.Background(), token.Token, testHostInfo())
	require.NoError(t, err)

	_, err = server.RedeemToken(context.Background(), token.Token, testHostInfo())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRedeemTokenUnknown(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)

	_, err := server.RedeemToken(context.Background(), "pair-v1:no-such-token", testHostInfo())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRedeemTokenExpired(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)

	expired := &models.PairingToken{
		Token:          "pair-v1:expired",
		OrganizationID: "org-1",
		ExpiresAt:      time.Now().UTC().Add(-time.Minute),
		CreatedAt:      time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, store.CreatePairingToken(context.Background(), expired))

	_, err := server.RedeemToken(context.Background(), expired.Token, testHostInfo())
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRedeemTokenConcurrent(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)

	token, err := server.IssueToken(context.Background(), "org-1")
	require.NoError(t, err)

	const redeemers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		losers    int
	)

	for i := 0; i < redeemers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := server.RedeemToken(context.Background(), token.Token, testHostInfo())

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, ErrInvalidToken) {
				losers++
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, successes, "exactly one redemption wins")
	assert.Equal(t, redeemers-1, losers)
}

func TestRedeemTokenDefaultsAgentVersion(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)

	token, err := server.IssueToken(context.Background(), "org-1")
	require.NoError(t, err)

	result, err := server.RedeemToken(context.Background(), token.Token, &models.HostInfo{
		Hostname: "bare-host",
		OSType:   "linux",
	})
	require.NoError(t, err)

	host, err := store.GetHost(context.Background(), result.HostID)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", host.AgentVersion)
}
