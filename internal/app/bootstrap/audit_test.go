package bootstrap

import (
	"context"
	"log/slog"
	"testing"
	"time"

	ledgercommands "campusvote/contexts/election/vote-ledger/application/commands"
	"campusvote/internal/platform/messaging"
	"campusvote/internal/shared/events"
)

// recordHandler forwards log records to a channel so tests can wait for
// asynchronous bus delivery.
type recordHandler struct {
	records chan slog.Record
}

func (h recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordHandler) Handle(_ context.Context, record slog.Record) error {
	select {
	case h.records <- record:
	default:
	}
	return nil
}

func (h recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h recordHandler) WithGroup(string) slog.Handler { return h }

func TestAuditLogReceivesCastEvents(t *testing.T) {
	handler := recordHandler{records: make(chan slog.Record, 8)}
	logger := slog.New(handler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := messaging.NewBus(nil)
	if err := registerAuditLog(ctx, bus, logger); err != nil {
		t.Fatalf("registerAuditLog: %v", err)
	}

	envelope := events.Envelope{
		EventID:        "evt-1",
		EventType:      "vote.cast",
		SourceService:  "vote-ledger",
		OccurredAtUTC:  time.Now().UTC(),
		CorrelationID:  "evt-1",
		EntityType:     "poll",
		EntityID:       "poll-1",
		PayloadVersion: 1,
	}
	if err := bus.Publish(ctx, ledgercommands.TopicVotes, envelope); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case record := <-handler.records:
		var eventID, eventName string
		record.Attrs(func(attr slog.Attr) bool {
			switch attr.Key {
			case "event":
				eventName = attr.Value.String()
			case "event_id":
				eventID = attr.Value.String()
			}
			return true
		})
		if eventName != "audit_vote_cast" {
			t.Fatalf("event = %q, want audit_vote_cast", eventName)
		}
		if eventID != "evt-1" {
			t.Fatalf("event_id = %q, want evt-1", eventID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no audit record delivered")
	}
}
