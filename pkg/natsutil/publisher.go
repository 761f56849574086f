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

// Package natsutil publishes CloudEvents-shaped change events to NATS
// JetStream so dashboards can subscribe without polling the store.
package natsutil

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/fleetwatch/fleetwatch/pkg/logger"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

const (
	defaultStream        = "events"
	defaultSubjectPrefix = "events"
	eventSource          = "fleetwatch/core"

	hostPairedType  = "com.fleetwatch.host.paired"
	alertRaisedType = "com.fleetwatch.alert.raised"
)

// Publisher writes change events to a JetStream stream. It satisfies
// core.EventPublisher.
type Publisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	logger  logger.Logger
}

// NewPublisher connects to NATS and ensures the event stream exists.
func NewPublisher(ctx context.Context, cfg *models.NATSConfig, log logger.Logger) (*Publisher, error) {
	stream := cfg.Stream
	if stream == "" {
		stream = defaultStream
	}

	subject := cfg.Subject
	if subject == "" {
		subject = defaultSubjectPrefix
	}

	conn, err := nats.Connect(cfg.URL, nats.Name("fleetwatch-core"))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     stream,
		Subjects: []string{subject + ".>"},
		Storage:  jetstream.FileStorage,
	}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ensure stream %s: %w", stream, err)
	}

	return &Publisher{
		conn:    conn,
		js:      js,
		subject: subject,
		logger:  log.WithComponent("natsutil"),
	}, nil
}

// PublishHostPaired emits an event when a pairing token is redeemed.
func (p *Publisher) PublishHostPaired(ctx context.Context, data models.HostPairedEventData) error {
	return p.publish(ctx, p.subject+".host.paired", hostPairedType, data.HostID, data)
}

// PublishAlertRaised emits an event when the rule engine raises an alert.
func (p *Publisher) PublishAlertRaised(ctx context.Context, data models.AlertEventData) error {
	return p.publish(ctx, p.subject+".alert.raised", alertRaisedType, data.AlertID, data)
}

func (p *Publisher) publish(ctx context.Context, subject, eventType, eventSubject string, data interface{}) error {
	now := time.Now().UTC()

	payload, err := json.Marshal(models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.NewString(),
		Source:          eventSource,
		Type:            eventType,
		DataContentType: "application/json",
		Subject:         eventSubject,
		Time:            &now,
		Data:            data,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if _, err := p.js.Publish(ctx, subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	p.logger.Debug().Str("subject", subject).Str("type", eventType).Msg("event published")

	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	p.conn.Close()
}
