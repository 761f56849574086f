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

import "errors"

var (
	// ErrInvalidToken covers absent and already-used pairing tokens alike, so
	// the loser of a concurrent redemption race sees the same failure as a
	// caller with a bogus token.
	ErrInvalidToken = errors.New("invalid or already used pairing token")

	// ErrTokenExpired is returned when a pairing token exists but its expiry
	// has passed.
	ErrTokenExpired = errors.New("pairing token has expired")

	// ErrAgentAuth is the single failure kind for agent credential checks:
	// unknown host and wrong key are indistinguishable to the caller.
	ErrAgentAuth = errors.New("invalid agent credentials")

	// ErrIngestFailure wraps store write errors during a telemetry batch.
	ErrIngestFailure = errors.New("telemetry ingest failed")

	// ErrInvalidDataType is returned for an unknown telemetry report kind.
	ErrInvalidDataType = errors.New("invalid telemetry data type")

	// ErrUnauthorized is returned for session-authenticated operations
	// lacking a valid session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMissingOrganization is returned when a session user has no
	// organization to register hosts into.
	ErrMissingOrganization = errors.New("user organization not found")
)
