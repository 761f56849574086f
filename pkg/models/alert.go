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

type AlertType string

const (
	AlertTypeSecurity  AlertType = "security"
	AlertTypeBandwidth AlertType = "bandwidth"
	AlertTypeAnomaly   AlertType = "anomaly"
	AlertTypeBlocked   AlertType = "blocked"
)

type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "low"
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

type AlertStatus string

const (
	AlertStatusActive    AlertStatus = "active"
	AlertStatusResolved  AlertStatus = "resolved"
	AlertStatusDismissed AlertStatus = "dismissed"
)

// Alert is raised by the rule engine or the host registration flow. Alerts are
// only ever mutated by resolution and are never deleted.
type Alert struct {
	ID             string                 `json:"id"`
	OrganizationID string                 `json:"organization_id"`
	HostID         string                 `json:"host_id"`
	ProcessID      *string                `json:"process_id,omitempty"`
	ConnectionID   *string                `json:"connection_id,omitempty"`
	Type           AlertType              `json:"type"`
	Severity       AlertSeverity          `json:"severity"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Status         AlertStatus            `json:"status"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	ResolvedBy     *string                `json:"resolved_by,omitempty"`
	ResolvedAt     *time.Time             `json:"resolved_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// AlertListFilter narrows alert queries for the operator API.
type AlertListFilter struct {
	OrganizationID string
	HostID         string
	Statuses       []AlertStatus
	Limit          int
}
