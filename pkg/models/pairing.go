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

// PairingToken is a single-use, time-limited credential that bootstraps an
// agent's long-lived API key. A token is redeemable iff it is unused and not
// yet expired; marking it used is a conditional update so concurrent
// redemptions cannot both succeed.
type PairingToken struct {
	Token          string     `json:"token"`
	OrganizationID string     `json:"organization_id"`
	ExpiresAt      time.Time  `json:"expires_at"`
	IsUsed         bool       `json:"is_used"`
	UsedByHost     *string    `json:"used_by_host,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UsedAt         *time.Time `json:"used_at,omitempty"`
}

// PairResult is returned to the agent exactly once on successful redemption.
// The API key is not retrievable again; losing it requires re-pairing.
type PairResult struct {
	HostID           string `json:"host_id"`
	APIKey           string `json:"api_key"`
	RealtimeEndpoint string `json:"realtime_endpoint,omitempty"`
}
