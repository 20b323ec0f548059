package events

import (
	"context"

	"github.com/signinflow/idsignin/pkg/signin"
)

// MultiSink fans a single Emit call out to every composed sink, so a host
// can run the Prometheus and structured-logging sinks side by side.
type MultiSink struct {
	sinks []signin.EventSink
}

// NewMultiSink composes sinks in the given order.
func NewMultiSink(sinks ...signin.EventSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Emit(ctx context.Context, event signin.Event) {
	for _, sink := range m.sinks {
		sink.Emit(ctx, event)
	}
}

var _ signin.EventSink = (*MultiSink)(nil)
