package hostbridge

import (
	"fmt"
	"net/http"
	"time"

	"github.com/signinflow/idsignin/internal/strutil"
	"github.com/signinflow/idsignin/pkg/signin"
)

const stateQueryParam = "state"

// bridgeProviderKey is a reserved ChallengeProperties key the bridge uses
// to remember which Provider a state value belongs to, so the callback
// leg can find its way back to the same Provider.Identity exchange. It is
// stripped before ChallengeProperties is handed back to callers.
const bridgeProviderKey = "__hostbridge_provider"

// CookieBridge is the default signin.Bridge: it stores one principal per
// signin.Scheme as a signed-JWT-in-a-cookie (principalCookie +
// principalCodec) and the per-challenge round-trip properties in a
// short-lived MessageStore keyed by a generated state value.
type CookieBridge struct {
	codec     *principalCodec
	principal map[signin.Scheme]*principalCookie
	state     signin.MessageStore[signin.ChallengeProperties]
	providers map[string]Provider
}

// NewCookieBridge builds a CookieBridge. principalHashKey/principalBlockKey
// should come from one cookiejar.DeriveKeys call and principalJWTKey from
// another, independent one.
func NewCookieBridge(
	principalHashKey, principalBlockKey, principalJWTKey []byte,
	stateStore signin.MessageStore[signin.ChallengeProperties],
	persistentMaxAge time.Duration,
	secure bool,
) *CookieBridge {
	principal := map[signin.Scheme]*principalCookie{
		signin.SchemePrimary:  newPrincipalCookie("idsignin.primary", principalHashKey, principalBlockKey, persistentMaxAge, secure),
		signin.SchemeExternal: newPrincipalCookie("idsignin.external", principalHashKey, principalBlockKey, persistentMaxAge, secure),
		signin.SchemePartial:  newPrincipalCookie("idsignin.partial", principalHashKey, principalBlockKey, persistentMaxAge, secure),
	}

	return &CookieBridge{
		codec:     newPrincipalCodec(principalJWTKey),
		principal: principal,
		state:     stateStore,
		providers: make(map[string]Provider),
	}
}

// Register adds an external Provider. Call before serving requests; not
// safe for concurrent use with Challenge/ChallengeProperties.
func (b *CookieBridge) Register(p Provider) {
	b.providers[p.Name()] = p
}

// Provider looks up a registered external Provider by name.
func (b *CookieBridge) Provider(name string) (Provider, bool) {
	p, ok := b.providers[name]
	return p, ok
}

func (b *CookieBridge) Challenge(w http.ResponseWriter, r *http.Request, providerName, redirectURI string, props signin.ChallengeProperties) error {
	p, ok := b.providers[providerName]
	if !ok {
		return fmt.Errorf("hostbridge: unknown provider %q", providerName)
	}

	state := strutil.Random(32)
	stored := make(signin.ChallengeProperties, len(props)+1)
	for k, v := range props {
		stored[k] = v
	}
	stored[bridgeProviderKey] = providerName
	if err := b.state.Put(w, state, stored); err != nil {
		return err
	}

	return p.Challenge(w, r, redirectURI, state)
}

func (b *CookieBridge) ChallengeProperties(r *http.Request) (signin.ChallengeProperties, bool) {
	stored, ok := b.readState(r)
	if !ok {
		return nil, false
	}

	props := make(signin.ChallengeProperties, len(stored))
	for k, v := range stored {
		if k == bridgeProviderKey {
			continue
		}
		props[k] = v
	}
	return props, true
}

func (b *CookieBridge) readState(r *http.Request) (signin.ChallengeProperties, bool) {
	state := r.URL.Query().Get(stateQueryParam)
	if state == "" {
		return nil, false
	}
	return b.state.Read(r, state)
}

// ExternalIdentity completes the provider exchange for the callback
// request: it recovers which Provider the round-tripped state value
// belongs to (stashed by Challenge) and asks that Provider to exchange the
// callback for an identity, per spec.md section 4.1's external-callback
// algorithm step 3.
func (b *CookieBridge) ExternalIdentity(r *http.Request) (*signin.Principal, bool) {
	state := r.URL.Query().Get(stateQueryParam)
	if state == "" {
		return nil, false
	}

	stored, ok := b.readState(r)
	if !ok {
		return nil, false
	}

	p, ok := b.providers[stored[bridgeProviderKey]]
	if !ok {
		return nil, false
	}

	identity, err := p.Identity(r, state)
	if err != nil {
		return nil, false
	}

	principal := identity.Principal()
	if !principal.HasClaim(signin.ClaimIdP) {
		principal.AddClaim(signin.ClaimIdP, identity.Provider, "")
	}
	return principal, true
}

func (b *CookieBridge) PartialSignInIdentity(r *http.Request) (*signin.Principal, bool) {
	return b.readPrincipal(r, signin.SchemePartial)
}

func (b *CookieBridge) Identity(r *http.Request, scheme signin.Scheme) (*signin.Principal, bool) {
	return b.readPrincipal(r, scheme)
}

func (b *CookieBridge) readPrincipal(r *http.Request, scheme signin.Scheme) (*signin.Principal, bool) {
	store, ok := b.principal[scheme]
	if !ok {
		return nil, false
	}

	token, ok := store.Read(r)
	if !ok {
		return nil, false
	}

	principal, err := b.codec.Decode(token)
	if err != nil {
		return nil, false
	}
	return principal, true
}

func (b *CookieBridge) SignIn(w http.ResponseWriter, r *http.Request, scheme signin.Scheme, identity *signin.Principal, opts signin.CookieOptions) error {
	store, ok := b.principal[scheme]
	if !ok {
		return fmt.Errorf("hostbridge: unknown scheme %q", scheme)
	}

	token, err := b.codec.Encode(identity)
	if err != nil {
		return err
	}

	return store.Put(w, token, opts)
}

func (b *CookieBridge) SignOut(w http.ResponseWriter, r *http.Request, schemes ...signin.Scheme) error {
	if len(schemes) == 0 {
		schemes = signin.Schemes
	}
	for _, scheme := range schemes {
		if store, ok := b.principal[scheme]; ok {
			store.Clear(w)
		}
	}
	return nil
}

var _ signin.Bridge = (*CookieBridge)(nil)
