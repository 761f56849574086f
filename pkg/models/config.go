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

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration so config files can use strings like "15m".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}

		*d = Duration(parsed)

		return nil
	default:
		return fmt.Errorf("invalid duration value %v", v)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// TLSFiles points at a client keypair plus CA bundle for mutual TLS.
type TLSFiles struct {
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
	CAFile   string `json:"ca_file"`
}

// PostgresDatabase describes the connection to the durable store.
type PostgresDatabase struct {
	Host             string    `json:"host"`
	Port             int       `json:"port"`
	Database         string    `json:"database"`
	Username         string    `json:"username"`
	Password         string    `json:"password"`
	SSLMode          string    `json:"ssl_mode,omitempty"`
	ApplicationName  string    `json:"application_name,omitempty"`
	MaxConnections   int32     `json:"max_connections,omitempty"`
	MinConnections   int32     `json:"min_connections,omitempty"`
	MaxConnLifetime  Duration  `json:"max_conn_lifetime,omitempty"`
	StatementTimeout Duration  `json:"statement_timeout,omitempty"`
	CertDir          string    `json:"cert_dir,omitempty"`
	TLS              *TLSFiles `json:"tls,omitempty"`
}

// NATSConfig describes the optional change-event stream. When the URL is
// empty the core runs without publishing events.
type NATSConfig struct {
	URL     string `json:"url,omitempty"`
	Stream  string `json:"stream,omitempty"`
	Subject string `json:"subject_prefix,omitempty"`
}

// AlertRulesConfig tunes the alert rule engine.
type AlertRulesConfig struct {
	// SuspiciousRanges holds flagged CIDR ranges. Matching is a string-prefix
	// check on the network portion, not exact CIDR containment.
	SuspiciousRanges []string `json:"suspicious_ranges,omitempty"`
	// BandwidthAlertBytes is the per-connection total-bytes threshold.
	BandwidthAlertBytes int64 `json:"bandwidth_alert_bytes,omitempty"`
}

// AuthConfig configures operator session authentication.
type AuthConfig struct {
	JWTSecret     string   `json:"jwt_secret"`
	JWTExpiration Duration `json:"jwt_expiration,omitempty"`
}
