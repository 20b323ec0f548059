package signin

import (
	"context"
	"net/http"
	"time"

	"github.com/signinflow/idsignin/internal/sessionstore"
)

// MaxInputParamLength bounds every user-controlled string parameter
// accepted by any handler (spec.md section 4.1). Parameters longer than
// this are rejected with a generic error page, before any cookie is read,
// any event emitted, or any user-service call made.
const MaxInputParamLength = 100

// MessageStore is the cookie-bound message protocol capability: an opaque
// envelope keyed by a short identifier (spec.md section 3/DESIGN NOTES).
// Reading a cookie under id X must fail if the envelope's own stored id
// does not match X (cross-flow confusion protection, spec.md section 5).
type MessageStore[T any] interface {
	Put(w http.ResponseWriter, id string, value T) error
	Read(r *http.Request, id string) (T, bool)
	Clear(w http.ResponseWriter, id string)
}

// ValueStore is the single-value degenerate case of the message envelope: a
// fixed, well-known cookie name instead of a per-id one (SessionCookie /
// LastUserNameCookie).
type ValueStore interface {
	Put(w http.ResponseWriter, value string, persistent bool) error
	Read(r *http.Request) (string, bool)
	Clear(w http.ResponseWriter)
}

// Config carries every tunable named in spec.md plus the pluggable
// collaborators this subsystem depends on.
type Config struct {
	// BasePath is the prefix every route in section 6 is mounted under.
	BasePath string
	// Host is this identity server's externally-visible origin, used to
	// compute the partial-login resume URL and the external-callback
	// redirect URI.
	Host string
	// SiteName/SiteURL are surfaced in every view model.
	SiteName string
	SiteURL  string

	// EnableLocalLogin is the server-wide local-login switch (spec.md
	// section 4.1, local login step 1).
	EnableLocalLogin bool
	// EnableSignOutPrompt, when false, skips the logout confirmation
	// page (spec.md section 4.2).
	EnableSignOutPrompt bool
	// EnableLoginHint, when true, lets SignInMessage.LoginHint seed the
	// login page's username field (spec.md section 4.3).
	EnableLoginHint bool
	// PersistentLoginIsDefault governs the rememberMe == nil branch of
	// the persistence truth table (spec.md P6).
	PersistentLoginIsDefault bool
	// RememberMeDuration is the explicit expiry applied when rememberMe
	// == true (spec.md P6).
	RememberMeDuration time.Duration
	// AuthnSessionTimeout is not read by any handler or store in this
	// repository: SignInMessage and partial sign-in cookie lifetimes come
	// from the maxAge each store is constructed with.
	AuthnSessionTimeout time.Duration

	UserService UserService
	ClientStore ClientStore
	ViewService ViewService
	EventSink   EventSink
	Bridge      Bridge

	SignInStore  MessageStore[SignInMessage]
	SignOutStore MessageStore[SignOutMessage]

	SessionCookie      ValueStore
	LastUserNameCookie ValueStore

	// SessionStore persists the durable SessionRecord a fresh SessionId
	// correlates to (spec.md section 3, supplemented: see SPEC_FULL.md
	// section 4.6 "Session Correlation Store"). Nil disables session-record
	// persistence; the SessionId cookie is still issued.
	SessionStore sessionstore.Store

	// IFrameURLs renders the protocol-level front-channel-logout iframe
	// URLs for a SignOutMessage's client (spec.md section 4.2 step 6).
	// Rendering those URLs is itself out of this subsystem's scope (it
	// belongs to the upstream RP-initiated-logout/check-session
	// endpoints); a nil IFrameURLs yields an empty slice.
	IFrameURLs IFrameURLRenderer
}

// IFrameURLRenderer resolves the set of relying-party front-channel
// logout iframe URLs to embed on the logged-out page.
type IFrameURLRenderer interface {
	IFrameURLs(ctx context.Context, msg SignOutMessage) []string
}
