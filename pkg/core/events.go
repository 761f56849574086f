package core

import (
	"context"

	"github.com/fleetwatch/fleetwatch/pkg/models"
)

// EventPublisher is the change-event stream the core writes to so dashboards
// can subscribe without polling the store. A nil publisher disables events;
// publish failures are logged and never surfaced to the triggering operation.
type EventPublisher interface {
	PublishHostPaired(ctx context.Context, data models.HostPairedEventData) error
	PublishAlertRaised(ctx context.Context, data models.AlertEventData) error
}

func (s *Server) publishHostPaired(ctx context.Context, data models.HostPairedEventData) {
	if s.events == nil {
		return
	}

	if err := s.events.PublishHostPaired(ctx, data); err != nil {
		s.logger.Warn().Err(err).Str("host_id", data.HostID).Msg("failed to publish host paired event")
	}
}
