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
	"strings"
	"time"

	"github.com/fleetwatch/fleetwatch/pkg/db"
	"github.com/fleetwatch/fleetwatch/pkg/logger"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

// AlertEngine evaluates connection telemetry against the configured rules and
// raises alerts. The engine is stateless: it holds no history of past alerts,
// so a condition that persists across reports raises an alert every report.
// Rule evaluation never fails ingestion; every failure path here degrades to
// a logged no-op.
type AlertEngine struct {
	db     db.Service
	rules  *models.AlertRulesConfig
	logger logger.Logger
	events EventPublisher
}

// NewAlertEngine builds an engine over the store with the given rule config.
func NewAlertEngine(database db.Service, rules *models.AlertRulesConfig, log logger.Logger, events EventPublisher) *AlertEngine {
	return &AlertEngine{
		db:     database,
		rules:  rules,
		logger: log.WithComponent("alerts"),
		events: events,
	}
}

// CheckConnection runs every rule against one connection. Rules are
// independent: a single connection can raise both a security and a bandwidth
// alert. Alerts need the host's organization; if the host row cannot be
// loaded the evaluation is skipped entirely.
func (e *AlertEngine) CheckConnection(ctx context.Context, hostID string, conn *models.Connection) {
	host, err := e.db.GetHost(ctx, hostID)
	if err != nil {
		e.logger.Warn().Err(err).Str("host_id", hostID).Msg("alert check skipped, host lookup failed")
		return
	}

	if alert := e.checkSuspiciousDestination(host, conn); alert != nil {
		e.raise(ctx, alert)
	}

	if alert := e.checkBandwidth(host, conn); alert != nil {
		e.raise(ctx, alert)
	}
}

// checkSuspiciousDestination flags connections whose remote IP falls in a
// configured suspicious range. Matching compares the first three octets of
// the remote IP against the network portion of each range, a deliberate
// approximation that treats every configured range as a /24.
func (e *AlertEngine) checkSuspiciousDestination(host *models.Host, conn *models.Connection) *models.Alert {
	if conn.RemoteIP == "" {
		return nil
	}

	remotePrefix := firstThreeOctets(conn.RemoteIP)
	if remotePrefix == "" {
		return nil
	}

	for _, cidr := range e.rules.SuspiciousRanges {
		network := cidr
		if idx := strings.Index(network, "/"); idx >= 0 {
			network = network[:idx]
		}

		if firstThreeOctets(network) != remotePrefix {
			continue
		}

		return &models.Alert{
			OrganizationID: host.OrganizationID,
			HostID:         host.ID,
			Type:           models.AlertTypeSecurity,
			Severity:       models.AlertSeverityHigh,
			Title:          "Suspicious Connection Detected",
			Description:    fmt.Sprintf("Connection to suspicious IP range: %s", conn.RemoteIP),
			Status:         models.AlertStatusActive,
			Metadata: map[string]interface{}{
				"remote_ip":   conn.RemoteIP,
				"remote_port": conn.RemotePort,
				"protocol":    conn.Protocol,
			},
			CreatedAt: time.Now().UTC(),
		}
	}

	return nil
}

// checkBandwidth flags connections whose cumulative sent+received bytes
// exceed the configured threshold. The counters are lifetime totals for the
// connection, so a long-lived connection keeps re-raising on every report.
func (e *AlertEngine) checkBandwidth(host *models.Host, conn *models.Connection) *models.Alert {
	total := conn.BytesSent + conn.BytesReceived
	if total <= e.rules.BandwidthAlertBytes {
		return nil
	}

	return &models.Alert{
		OrganizationID: host.OrganizationID,
		HostID:         host.ID,
		Type:           models.AlertTypeBandwidth,
		Severity:       models.AlertSeverityMedium,
		Title:          "High Bandwidth Usage Detected",
		Description:    fmt.Sprintf("Connection transferred %d bytes", total),
		Status:         models.AlertStatusActive,
		Metadata: map[string]interface{}{
			"bytes_total": total,
			"remote_ip":   conn.RemoteIP,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func (e *AlertEngine) raise(ctx context.Context, alert *models.Alert) {
	id, err := e.db.InsertAlert(ctx, alert)
	if err != nil {
		e.logger.Warn().Err(err).
			Str("host_id", alert.HostID).
			Str("type", string(alert.Type)).
			Msg("failed to persist alert")

		return
	}

	e.logger.Info().
		Str("alert_id", id).
		Str("host_id", alert.HostID).
		Str("type", string(alert.Type)).
		Str("severity", string(alert.Severity)).
		Msg("alert raised")

	if e.events == nil {
		return
	}

	if err := e.events.PublishAlertRaised(ctx, models.AlertEventData{
		AlertID:        id,
		OrganizationID: alert.OrganizationID,
		HostID:         alert.HostID,
		Type:           alert.Type,
		Severity:       alert.Severity,
		Title:          alert.Title,
		RaisedAt:       alert.CreatedAt,
	}); err != nil {
		e.logger.Warn().Err(err).Str("alert_id", id).Msg("failed to publish alert event")
	}
}

// firstThreeOctets returns "a.b.c" for a dotted-quad address, or "" when the
// address does not have at least three dot-separated parts.
func firstThreeOctets(ip string) string {
	parts := strings.SplitN(ip, ".", 4)
	if len(parts) < 4 {
		return ""
	}

	return strings.Join(parts[:3], ".")
}
