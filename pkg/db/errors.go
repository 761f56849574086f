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

import "errors"

var (

	// Operation errors.

	ErrFailedToScan   = errors.New("failed to scan")
	ErrFailedToQuery  = errors.New("failed to query")
	ErrFailedToInsert = errors.New("failed to insert")
	ErrFailedToInit   = errors.New("failed to initialize schema")
	ErrFailedOpenDB   = errors.New("failed to open database")

	// Lookups.

	ErrHostNotFound         = errors.New("host not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrPairingTokenNotFound = errors.New("pairing token not found")

	// Validation.

	ErrHostNil              = errors.New("host is nil")
	ErrHostIdentityMissing  = errors.New("organization_id and hostname are required")
	ErrPairingTokenNil      = errors.New("pairing token is nil")
	ErrPairingTokenRequired = errors.New("pairing token string is required")
	ErrProcessNil           = errors.New("process is nil")
	ErrProcessHostRequired  = errors.New("process host_id is required")
	ErrConnectionNil        = errors.New("connection is nil")
	ErrConnectionKeyMissing = errors.New("connection host_id, process_id, remote_ip, and remote_port are required")
	ErrNetworkStatsNil      = errors.New("network stats is nil")
	ErrAlertNil             = errors.New("alert is nil")
	ErrAlertKeyMissing      = errors.New("alert organization_id and host_id are required")
	ErrUserNil              = errors.New("user is nil")

	// TLS helpers.

	ErrLackingTLSFiles = errors.New("postgres tls requires cert_file, key_file, and ca_file")
	ErrAppendCACert    = errors.New("postgres tls: unable to append CA certificate")
)
