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

	"github.com/fleetwatch/fleetwatch/pkg/config"
	"github.com/fleetwatch/fleetwatch/pkg/core"
	"github.com/fleetwatch/fleetwatch/pkg/core/api"
	"github.com/fleetwatch/fleetwatch/pkg/core/auth"
	"github.com/fleetwatch/fleetwatch/pkg/logger"
	"github.com/fleetwatch/fleetwatch/pkg/natsutil"
)

func main() {
	configPath := flag.String("config", "/etc/fleetwatch/core.json", "Path to core config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bootLog := logger.NewTestLogger()

	var cfg core.Config
	if err := config.NewConfig(bootLog).LoadAndValidate(ctx, configPath, &cfg); err != nil {
		return err
	}

	config.EnvOverride(&cfg.Database.Password, "FLEETWATCH_DB_PASSWORD")
	config.EnvOverride(&cfg.Auth.JWTSecret, "FLEETWATCH_JWT_SECRET")
	config.EnvOverride(&cfg.NATS.URL, "FLEETWATCH_NATS_URL")

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	opts := []core.Option{}

	if cfg.NATS.URL != "" {
		publisher, err := natsutil.NewPublisher(ctx, &cfg.NATS, log)
		if err != nil {
			return fmt.Errorf("init event publisher: %w", err)
		}
		defer publisher.Close()

		opts = append(opts, core.WithEventPublisher(publisher))
	}

	server, err := core.NewServer(ctx, &cfg, log, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing core server")
		}
	}()

	sessions := auth.NewService(auth.Config{
		JWTSecret:     server.Config().Auth.JWTSecret,
		JWTExpiration: time.Duration(server.Config().Auth.JWTExpiration),
	}, server.DB(), log)

	apiServer := api.NewAPIServer(server, sessions, log)

	return apiServer.Start(ctx, server.Config().ListenAddr)
}
