package bootstrap

import (
	"context"
	"log/slog"

	ledgercommands "campusvote/contexts/election/vote-ledger/application/commands"
	"campusvote/internal/platform/messaging"
	"campusvote/internal/shared/events"
)

// registerAuditLog attaches the audit consumer to the ledger topic. Every
// cast ballot leaves one audit record in the log stream, keyed by event
// and poll id.
func registerAuditLog(ctx context.Context, bus *messaging.Bus, logger *slog.Logger) error {
	return bus.Subscribe(ctx, ledgercommands.TopicVotes, "audit-log", func(ctx context.Context, event events.Envelope) error {
		logger.Info("vote audit entry",
			"event", "audit_vote_cast",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"entity_type", event.EntityType,
			"entity_id", event.EntityID,
			"occurred_at", event.OccurredAtUTC,
		)
		return nil
	})
}
