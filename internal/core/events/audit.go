package events

import (
	"context"
	"log/slog"
)

// RegisterAuditLogger attaches a structured-log handler to every delegation
// event type. This is the audit trail for grant lifecycle changes; rows
// themselves are hard-deleted on revocation.
func RegisterAuditLogger(bus *EventBus, logger *slog.Logger) {
	handler := func(ctx context.Context, event Event) error {
		logger.InfoContext(ctx, "delegation audit",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	for _, eventType := range []string{
		EventTypeDelegationCreated,
		EventTypeDelegationUpdated,
		EventTypeDelegationRevoked,
	} {
		bus.Subscribe(eventType, handler)
	}
}
