package notify

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"doneapp/internal/core/port"
)

// LogSink writes fired alerts to the structured log. A real deployment would
// swap in a push-gateway sink behind the same interface.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink() *LogSink {
	return &LogSink{
		logger: zerolog.New(os.Stdout).With().Timestamp().Str("component", "alerts").Logger(),
	}
}

func (s *LogSink) Deliver(ctx context.Context, req port.AlertRequest) {
	event := s.logger.Info().
		Str("id", req.ID).
		Str("title", req.Title).
		Str("body", req.Body)

	if req.FireAt != nil {
		event = event.Time("fire_at", *req.FireAt)
	}

	event.Msg("Alert fired")
}
