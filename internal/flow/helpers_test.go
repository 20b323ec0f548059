package flow

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/signinflow/idsignin/internal/cookiejar"
	"github.com/signinflow/idsignin/internal/flowctx"
	"github.com/signinflow/idsignin/internal/sessionstore"
	"github.com/signinflow/idsignin/pkg/signin"
)

type fakeBridge struct {
	principals     map[signin.Scheme]*signin.Principal
	signInOpts     map[signin.Scheme]signin.CookieOptions
	challengeProps signin.ChallengeProperties
	challengeErr   error
	signOutSchemes []signin.Scheme
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{
		principals: map[signin.Scheme]*signin.Principal{},
		signInOpts: map[signin.Scheme]signin.CookieOptions{},
	}
}

func (b *fakeBridge) Challenge(w http.ResponseWriter, r *http.Request, provider, redirectURI string, props signin.ChallengeProperties) error {
	if b.challengeErr != nil {
		return b.challengeErr
	}
	b.challengeProps = props
	http.Redirect(w, r, "https://"+provider+".example/authorize?redirect_uri="+redirectURI, http.StatusFound)
	return nil
}

func (b *fakeBridge) ChallengeProperties(r *http.Request) (signin.ChallengeProperties, bool) {
	if b.challengeProps == nil {
		return nil, false
	}
	return b.challengeProps, true
}

func (b *fakeBridge) ExternalIdentity(r *http.Request) (*signin.Principal, bool) {
	p, ok := b.principals[signin.SchemeExternal]
	return p, ok
}

func (b *fakeBridge) PartialSignInIdentity(r *http.Request) (*signin.Principal, bool) {
	p, ok := b.principals[signin.SchemePartial]
	return p, ok
}

func (b *fakeBridge) Identity(r *http.Request, scheme signin.Scheme) (*signin.Principal, bool) {
	p, ok := b.principals[scheme]
	return p, ok
}

func (b *fakeBridge) SignIn(w http.ResponseWriter, r *http.Request, scheme signin.Scheme, identity *signin.Principal, opts signin.CookieOptions) error {
	b.principals[scheme] = identity
	b.signInOpts[scheme] = opts
	return nil
}

func (b *fakeBridge) SignOut(w http.ResponseWriter, r *http.Request, schemes ...signin.Scheme) error {
	if len(schemes) == 0 {
		schemes = signin.Schemes
	}
	b.signOutSchemes = schemes
	for _, s := range schemes {
		delete(b.principals, s)
	}
	return nil
}

var _ signin.Bridge = (*fakeBridge)(nil)

type fakeUserService struct {
	preAuth           func(signin.SignInMessage) (*signin.AuthenticateResult, error)
	local             func(username, password string, msg signin.SignInMessage) (*signin.AuthenticateResult, error)
	external          func(identity signin.ExternalIdentity, msg signin.SignInMessage) (*signin.AuthenticateResult, error)
	signOutCalledWith *signin.Principal
}

func (s *fakeUserService) PreAuthenticate(_ context.Context, msg signin.SignInMessage) (*signin.AuthenticateResult, error) {
	if s.preAuth == nil {
		return nil, nil
	}
	return s.preAuth(msg)
}

func (s *fakeUserService) AuthenticateLocal(_ context.Context, username, password string, msg signin.SignInMessage) (*signin.AuthenticateResult, error) {
	if s.local == nil {
		return nil, nil
	}
	return s.local(username, password, msg)
}

func (s *fakeUserService) AuthenticateExternal(_ context.Context, identity signin.ExternalIdentity, msg signin.SignInMessage) (*signin.AuthenticateResult, error) {
	if s.external == nil {
		return nil, nil
	}
	return s.external(identity, msg)
}

func (s *fakeUserService) SignOut(_ context.Context, principal *signin.Principal) error {
	s.signOutCalledWith = principal
	return nil
}

var _ signin.UserService = (*fakeUserService)(nil)

type fakeClientStore struct {
	clients   map[string]signin.Client
	providers map[string]bool
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{clients: map[string]signin.Client{}, providers: map[string]bool{}}
}

func (s *fakeClientStore) Client(_ context.Context, clientID string) (signin.Client, bool) {
	c, ok := s.clients[clientID]
	return c, ok
}

func (s *fakeClientStore) IsValidIdentityProvider(_ context.Context, clientID, provider string) bool {
	return s.providers[clientID+"|"+provider]
}

var _ signin.ClientStore = (*fakeClientStore)(nil)

type fakeViewService struct {
	lastLogin signin.LoginViewModel
	lastError signin.ErrorViewModel
}

func (v *fakeViewService) RenderLogin(_ context.Context, model signin.LoginViewModel) ([]byte, error) {
	v.lastLogin = model
	return []byte("login-page"), nil
}

func (v *fakeViewService) RenderLogout(context.Context, signin.LogoutViewModel) ([]byte, error) {
	return []byte("logout-page"), nil
}

func (v *fakeViewService) RenderLoggedOut(context.Context, signin.LoggedOutViewModel) ([]byte, error) {
	return []byte("logged-out-page"), nil
}

func (v *fakeViewService) RenderError(_ context.Context, model signin.ErrorViewModel) ([]byte, error) {
	v.lastError = model
	return []byte("error-page"), nil
}

var _ signin.ViewService = (*fakeViewService)(nil)

type fakeEventSink struct{ events []signin.Event }

func (s *fakeEventSink) Emit(_ context.Context, event signin.Event) {
	s.events = append(s.events, event)
}

var _ signin.EventSink = (*fakeEventSink)(nil)

type testRig struct {
	cfg         *signin.Config
	bridge      *fakeBridge
	userService *fakeUserService
	clientStore *fakeClientStore
	views       *fakeViewService
	events      *fakeEventSink
}

func newTestRig() *testRig {
	bridge := newFakeBridge()
	userService := &fakeUserService{}
	clientStore := newFakeClientStore()
	views := &fakeViewService{}
	events := &fakeEventSink{}

	cfg := &signin.Config{
		BasePath:                 "/signin",
		Host:                     "https://idp.example",
		EnableLocalLogin:         true,
		PersistentLoginIsDefault: false,
		RememberMeDuration:       30 * 24 * time.Hour,
		UserService:              userService,
		ClientStore:              clientStore,
		ViewService:              views,
		EventSink:                events,
		Bridge:                   bridge,
		SignInStore:              cookiejar.NewMemoryStore[signin.SignInMessage](8),
		SignOutStore:             cookiejar.NewMemoryStore[signin.SignOutMessage](8),
		SessionCookie:            cookiejar.NewMemoryValueStore(),
		LastUserNameCookie:       cookiejar.NewMemoryValueStore(),
		SessionStore:             sessionstore.NewMemoryStore(),
	}

	return &testRig{cfg: cfg, bridge: bridge, userService: userService, clientStore: clientStore, views: views, events: events}
}

func (rig *testRig) newCtx(method, target string) (flowctx.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	return flowctx.New(rec, req, rig.cfg, slog.Default()), rec
}
