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
	"errors"
	"time"

	"github.com/fleetwatch/fleetwatch/pkg/logger"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

const (
	defaultPairingTokenTTL     = 15 * time.Minute
	defaultBandwidthAlertBytes = 100 * 1024 * 1024
	defaultJWTExpiration       = time.Hour
	defaultListenAddr          = ":8090"
)

// defaultSuspiciousRanges mirrors the placeholder policy shipped with the
// original rule set; deployments override it in config.
var defaultSuspiciousRanges = []string{"185.199.108.0/24", "192.168.1.0/24"}

var errJWTSecretRequired = errors.New("auth.jwt_secret is required")

// Config is the core service configuration.
type Config struct {
	ListenAddr       string                  `json:"listen_addr,omitempty"`
	Database         models.PostgresDatabase `json:"database"`
	Auth             models.AuthConfig       `json:"auth"`
	Alerts           models.AlertRulesConfig `json:"alerts,omitempty"`
	PairingTokenTTL  models.Duration         `json:"pairing_token_ttl,omitempty"`
	NATS             models.NATSConfig       `json:"nats,omitempty"`
	RealtimeEndpoint string                  `json:"realtime_endpoint,omitempty"`
	Logging          logger.Config           `json:"logging,omitempty"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errJWTSecretRequired
	}

	return nil
}

// normalizeConfig fills in defaults so the rest of the service never checks
// for zero values.
func normalizeConfig(cfg *Config) *Config {
	normalized := *cfg

	if normalized.ListenAddr == "" {
		normalized.ListenAddr = defaultListenAddr
	}

	if normalized.PairingTokenTTL == 0 {
		normalized.PairingTokenTTL = models.Duration(defaultPairingTokenTTL)
	}

	if normalized.Alerts.BandwidthAlertBytes == 0 {
		normalized.Alerts.BandwidthAlertBytes = defaultBandwidthAlertBytes
	}

	if len(normalized.Alerts.SuspiciousRanges) == 0 {
		normalized.Alerts.SuspiciousRanges = defaultSuspiciousRanges
	}

	if normalized.Auth.JWTExpiration == 0 {
		normalized.Auth.JWTExpiration = models.Duration(defaultJWTExpiration)
	}

	if normalized.RealtimeEndpoint == "" {
		normalized.RealtimeEndpoint = normalized.NATS.URL
	}

	return &normalized
}
