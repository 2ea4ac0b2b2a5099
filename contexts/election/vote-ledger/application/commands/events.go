package commands

import (
	"time"

	"campusvote/internal/shared/events"
)

// TopicVotes is the bus topic ledger events are published on.
const TopicVotes = "election.votes"

func newVoteEnvelope(
	eventID string,
	eventType string,
	pollID string,
	occurredAt time.Time,
	payload map[string]any,
) events.Envelope {
	return events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  "vote-ledger",
		OccurredAtUTC:  occurredAt.UTC(),
		CorrelationID:  eventID,
		EntityType:     "poll",
		EntityID:       pollID,
		PayloadVersion: 1,
		Payload:        payload,
	}
}
