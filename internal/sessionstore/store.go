// Package sessionstore implements the session correlation store (spec.md
// section 3 "SessionId cookie"): a durable record, keyed by the opaque
// SessionId minted on every full sign-in, that a sibling endpoint (e.g.
// front-channel logout or check-session, both out of this subsystem's
// scope) can use to correlate browser state with a subject.
package sessionstore

import (
	"context"
	"time"
)

// SessionRecord is the durable counterpart to the SessionId cookie.
type SessionRecord struct {
	ID        string
	Subject   string
	ClientID  string
	IdP       string
	CreatedAt time.Time
}

// Store persists SessionRecords. Implementations must be safe for
// concurrent use: the flow controller is request-scoped and makes no
// attempt at its own locking (spec.md section 5).
type Store interface {
	Save(ctx context.Context, record SessionRecord) error
	ByID(ctx context.Context, id string) (SessionRecord, bool, error)
	Delete(ctx context.Context, id string) error
}
