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
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleetwatch/fleetwatch/pkg/db"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

// fakeStore is an in-memory db.Service with the same atomicity semantics as
// the Postgres store: upserts keyed like the real unique indexes and a
// mutex-guarded conditional update for token redemption.
type fakeStore struct {
	mu sync.Mutex

	tokens      map[string]*models.PairingToken
	hosts       map[string]*models.Host
	processes   map[string]*models.Process  // host_id/pid
	connections map[string]*models.Connection // host_id/process_id/remote_ip/remote_port
	stats       map[string]*models.NetworkStats // host_id/timestamp/period
	alerts      []*models.Alert
	users       map[string]*models.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tokens:      make(map[string]*models.PairingToken),
		hosts:       make(map[string]*models.Host),
		processes:   make(map[string]*models.Process),
		connections: make(map[string]*models.Connection),
		stats:       make(map[string]*models.NetworkStats),
		users:       make(map[string]*models.User),
	}
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) CreatePairingToken(_ context.Context, token *models.PairingToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *token
	f.tokens[token.Token] = &copied

	return nil
}

func (f *fakeStore) GetPairingToken(_ context.Context, token string) (*models.PairingToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.tokens[token]
	if !ok {
		return nil, db.ErrPairingTokenNotFound
	}

	copied := *stored

	return &copied, nil
}

func (f *fakeStore) MarkPairingTokenUsed(_ context.Context, token, hostID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.tokens[token]
	if !ok || stored.IsUsed {
		return false, nil
	}

	now := time.Now().UTC()
	stored.IsUsed = true
	stored.UsedByHost = &hostID
	stored.UsedAt = &now

	return true, nil
}

func (f *fakeStore) GetHost(_ context.Context, hostID string) (*models.Host, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.hosts[hostID]
	if !ok {
		return nil, db.ErrHostNotFound
	}

	copied := *stored

	return &copied, nil
}

func (f *fakeStore) UpsertHost(_ context.Context, host *models.Host) (*models.Host, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.hosts {
		if existing.OrganizationID == host.OrganizationID && existing.Hostname == host.Hostname {
			existing.OSType = host.OSType
			existing.OSVersion = host.OSVersion
			existing.IPAddress = host.IPAddress
			existing.MACAddress = host.MACAddress
			existing.AgentVersion = host.AgentVersion
			existing.LastSeen = host.LastSeen
			existing.Status = host.Status
			existing.UpdatedAt = time.Now().UTC()

			copied := *existing

			return &copied, nil
		}
	}

	copied := *host
	copied.ID = uuid.NewString()
	copied.CreatedAt = time.Now().UTC()
	copied.UpdatedAt = copied.CreatedAt
	f.hosts[copied.ID] = &copied

	result := copied

	return &result, nil
}

func (f *fakeStore) UpdateHostAgentConfig(_ context.Context, hostID string, cfg *models.AgentConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.hosts[hostID]
	if !ok {
		return db.ErrHostNotFound
	}

	stored.AgentConfig = *cfg

	return nil
}

func (f *fakeStore) UpdateHostHeartbeat(_ context.Context, hostID string, seenAt time.Time, cfg *models.AgentConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.hosts[hostID]
	if !ok {
		return db.ErrHostNotFound
	}

	stored.LastSeen = seenAt
	stored.Status = models.HostStatusOnline
	stored.AgentConfig = *cfg

	return nil
}

func (f *fakeStore) UpsertProcesses(_ context.Context, processes []*models.Process) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, proc := range processes {
		key := fmt.Sprintf("%s/%d", proc.HostID, proc.PID)

		copied := *proc
		if existing, ok := f.processes[key]; ok {
			copied.ID = existing.ID
		} else {
			copied.ID = uuid.NewString()
		}

		f.processes[key] = &copied
	}

	return len(processes), nil
}

func (f *fakeStore) GetProcessIDsByPIDs(_ context.Context, hostID string, pids []int32) (map[int32]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make(map[int32]string)

	for _, pid := range pids {
		if proc, ok := f.processes[fmt.Sprintf("%s/%d", hostID, pid)]; ok {
			result[pid] = proc.ID
		}
	}

	return result, nil
}

func (f *fakeStore) UpsertConnections(_ context.Context, connections []*models.Connection) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, conn := range connections {
		key := fmt.Sprintf("%s/%s/%s/%d", conn.HostID, conn.ProcessID, conn.RemoteIP, conn.RemotePort)

		copied := *conn
		if existing, ok := f.connections[key]; ok {
			copied.ID = existing.ID
		} else {
			copied.ID = uuid.NewString()
		}

		f.connections[key] = &copied
	}

	return len(connections), nil
}

func (f *fakeStore) InsertNetworkStats(_ context.Context, stats *models.NetworkStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := fmt.Sprintf("%s/%d/%s", stats.HostID, stats.Timestamp.UnixNano(), stats.Period)
	if _, ok := f.stats[key]; ok {
		// Mirrors ON CONFLICT DO NOTHING on (host_id, timestamp, period).
		return nil
	}

	copied := *stats
	copied.ID = uuid.NewString()
	f.stats[key] = &copied

	return nil
}

func (f *fakeStore) InsertAlert(_ context.Context, alert *models.Alert) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *alert
	copied.ID = uuid.NewString()
	f.alerts = append(f.alerts, &copied)

	return copied.ID, nil
}

func (f *fakeStore) ListAlerts(_ context.Context, filter *models.AlertListFilter) ([]*models.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*models.Alert

	for _, alert := range f.alerts {
		if filter != nil && filter.OrganizationID != "" && alert.OrganizationID != filter.OrganizationID {
			continue
		}

		if filter != nil && filter.HostID != "" && alert.HostID != filter.HostID {
			continue
		}

		copied := *alert
		result = append(result, &copied)
	}

	return result, nil
}

func (f *fakeStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.users[userID]
	if !ok {
		return nil, db.ErrUserNotFound
	}

	copied := *stored

	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, db.ErrUserNotFound
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	copied := *user
	f.users[user.ID] = &copied

	return nil
}

func (f *fakeStore) alertsByType(alertType models.AlertType) []*models.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*models.Alert

	for _, alert := range f.alerts {
		if alert.Type == alertType {
			copied := *alert
			result = append(result, &copied)
		}
	}

	return result
}

var _ db.Service = (*fakeStore)(nil)
