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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetwatch/fleetwatch/pkg/agent"
	"github.com/fleetwatch/fleetwatch/pkg/logger"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8090", "Core service base URL")
	statePath := flag.String("state", "/var/lib/fleetwatch/agent.json", "Path to agent state file")
	pairingToken := flag.String("pairing-token", "", "Pairing token for first run")
	interval := flag.Duration("interval", time.Minute, "Telemetry report interval")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log, err := logger.New(logger.Config{Debug: *debug})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := agent.New(agent.Config{
		ServerURL:      *serverURL,
		StatePath:      *statePath,
		PairingToken:   *pairingToken,
		ReportInterval: *interval,
	}, log)

	if err := a.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("agent exited")
	}
}
