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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fleetwatch/fleetwatch/pkg/db"
	"github.com/fleetwatch/fleetwatch/pkg/logger"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

func newMockServer(t *testing.T) (*Server, *db.MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockDB := db.NewMockService(ctrl)

	cfg := &Config{}
	cfg.Auth.JWTSecret = "test-secret"

	server, err := NewServer(context.Background(), cfg, logger.NewTestLogger(), WithDatabase(mockDB))
	require.NoError(t, err)

	return server, mockDB
}

func TestIngestProcessesWrapsStoreError(t *testing.T) {
	server, mockDB := newMockServer(t)

	storeErr := errors.New("connection reset")
	mockDB.EXPECT().
		UpsertProcesses(gomock.Any(), gomock.Any()).
		Return(0, storeErr)

	_, err := server.IngestProcesses(context.Background(), "host-1", []models.ProcessReport{
		{PID: 1, Name: "init"},
	})

	assert.ErrorIs(t, err, ErrIngestFailure)
	assert.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), "processes", "the failing sub-batch is named")
}

func TestIngestConnectionsWrapsResolveError(t *testing.T) {
	server, mockDB := newMockServer(t)

	storeErr := errors.New("connection reset")
	mockDB.EXPECT().
		GetProcessIDsByPIDs(gomock.Any(), "host-1", []int32{7}).
		Return(nil, storeErr)

	_, err := server.IngestConnections(context.Background(), "host-1", []models.ConnectionReport{
		{ProcessPID: 7, RemoteIP: "10.0.0.1", RemotePort: 443},
	})

	assert.ErrorIs(t, err, ErrIngestFailure)
	assert.ErrorIs(t, err, storeErr)
}

func TestIngestConnectionsDeduplicatesPIDLookup(t *testing.T) {
	server, mockDB := newMockServer(t)
	host := &models.Host{ID: "host-1", OrganizationID: "org-1"}

	// Three reports over two PIDs resolve in one query with distinct PIDs.
	mockDB.EXPECT().
		GetProcessIDsByPIDs(gomock.Any(), "host-1", []int32{7, 8}).
		Return(map[int32]string{7: "proc-7", 8: "proc-8"}, nil)
	mockDB.EXPECT().GetHost(gomock.Any(), "host-1").Return(host, nil).Times(3)
	mockDB.EXPECT().
		UpsertConnections(gomock.Any(), gomock.Len(3)).
		Return(3, nil)

	count, err := server.IngestConnections(context.Background(), "host-1", []models.ConnectionReport{
		{ProcessPID: 7, RemoteIP: "10.0.0.1", RemotePort: 443},
		{ProcessPID: 8, RemoteIP: "10.0.0.2", RemotePort: 443},
		{ProcessPID: 7, RemoteIP: "10.0.0.3", RemotePort: 443},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
