package events

import (
	"context"

	"github.com/rs/zerolog"
)

// LogPublisher only logs events. Used when no broker is configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With().Str("component", "event_log").Logger()}
}

func (p *LogPublisher) Publish(_ context.Context, event SubmissionCreated) error {
	p.log.Info().
		Str("event_type", event.EventType).
		Str("reference_number", event.ReferenceNumber).
		Time("created_at", event.CreatedAt).
		Msg("Submission event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
