package events

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/signinflow/idsignin/pkg/signin"
)

// PrometheusSink increments one counter per EventKind, labeled by client
// id, matching abramin-Credo's promauto.NewCounter convention.
type PrometheusSink struct {
	events *prometheus.CounterVec
}

// NewPrometheusSink registers the counter vector against the default
// registry.
func NewPrometheusSink() *PrometheusSink {
	return &PrometheusSink{
		events: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idsignin_events_total",
			Help: "Total number of authentication flow events, by kind and client.",
		}, []string{"kind", "client_id"}),
	}
}

func (s *PrometheusSink) Emit(_ context.Context, event signin.Event) {
	s.events.WithLabelValues(string(event.Kind), event.ClientID).Inc()
}

var _ signin.EventSink = (*PrometheusSink)(nil)
