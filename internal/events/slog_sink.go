package events

import (
	"context"
	"log/slog"

	"github.com/signinflow/idsignin/pkg/signin"
)

// SlogSink logs one structured line per event, matching luikyv-go-oidc's
// own log/slog usage (cmd/main.go's slog.New(slog.NewJSONHandler(...))).
type SlogSink struct {
	log *slog.Logger
}

// NewSlogSink wraps log, defaulting to slog.Default() if nil.
func NewSlogSink(log *slog.Logger) *SlogSink {
	if log == nil {
		log = slog.Default()
	}
	return &SlogSink{log: log}
}

func (s *SlogSink) Emit(_ context.Context, event signin.Event) {
	s.log.Info("signin event",
		slog.String("kind", string(event.Kind)),
		slog.String("client_id", event.ClientID),
		slog.String("username", event.Username),
		slog.String("provider", event.Provider),
		slog.String("endpoint", event.Endpoint),
		slog.String("message", event.Message),
	)
}

var _ signin.EventSink = (*SlogSink)(nil)
