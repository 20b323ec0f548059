// Package events provides signin.EventSink implementations: a Prometheus
// counter sink (grounded on abramin-Credo's promauto-based metrics
// package), a structured-logging sink (grounded on luikyv-go-oidc's own
// log/slog usage), and a Multi sink composing any number of others.
package events
