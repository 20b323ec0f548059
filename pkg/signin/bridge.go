package signin

import "net/http"

// Scheme names the three authentication-cookie schemes the host auth
// bridge may hold an identity under.
type Scheme string

const (
	SchemePrimary  Scheme = "primary"
	SchemeExternal Scheme = "external"
	SchemePartial  Scheme = "partial"
)

// Schemes lists every scheme, in the order they must be cleared before a
// new one is issued (spec.md invariant P5).
var Schemes = []Scheme{SchemePrimary, SchemeExternal, SchemePartial}

// ChallengeProperties are attached to an external challenge so that they
// survive the round trip to the provider and back: the callback handler
// recovers the originating flow from them.
type ChallengeProperties map[string]string

// Bridge is the narrow capability this subsystem depends on to integrate
// with the host's external-provider and cookie-auth machinery. It enables
// in-process tests without a real OIDC host.
type Bridge interface {
	// Challenge redirects the browser to provider via the host's
	// challenge machinery, attaching props so the callback can recover
	// them.
	Challenge(w http.ResponseWriter, r *http.Request, provider, redirectURI string, props ChallengeProperties) error
	// ChallengeProperties recovers the properties stashed by the most
	// recent Challenge call, as observed on the callback request.
	ChallengeProperties(r *http.Request) (ChallengeProperties, bool)
	// ExternalIdentity returns the principal an external IdP callback
	// produced.
	ExternalIdentity(r *http.Request) (*Principal, bool)
	// Identity returns the principal currently held under scheme, if
	// any. Logout uses it against SchemePrimary to decide whether the
	// caller is authenticated at all.
	Identity(r *http.Request, scheme Scheme) (*Principal, bool)
	// PartialSignInIdentity returns the principal currently held under
	// the partial scheme, if any.
	PartialSignInIdentity(r *http.Request) (*Principal, bool)
	// SignIn issues identity under scheme, with the given persistence
	// options.
	SignIn(w http.ResponseWriter, r *http.Request, scheme Scheme, identity *Principal, opts CookieOptions) error
	// SignOut clears every cookie backing the named schemes.
	SignOut(w http.ResponseWriter, r *http.Request, schemes ...Scheme) error
}

// CookieOptions controls persistence of an issued authentication cookie.
type CookieOptions struct {
	// Persistent, when true, survives browser restarts.
	Persistent bool
	// ExpiresAt is set only for an explicit-expiry persistent cookie
	// (spec.md P6: rememberMe == true).
	ExpiresAt *int64
}
