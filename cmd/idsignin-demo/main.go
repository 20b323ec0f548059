// Command idsignin-demo wires the sign-in subsystem end to end against
// entirely mocked collaborators, mirroring luikyv-go-oidc's cmd/main.go
// convention of assembling a runnable server out of hand-built mocks
// rather than a real user store or client registry.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"

	"github.com/signinflow/idsignin/internal/cookiejar"
	"github.com/signinflow/idsignin/internal/events"
	"github.com/signinflow/idsignin/internal/flow"
	"github.com/signinflow/idsignin/internal/hostbridge"
	"github.com/signinflow/idsignin/internal/sessionstore"
	"github.com/signinflow/idsignin/internal/signout"
	"github.com/signinflow/idsignin/internal/view"
	"github.com/signinflow/idsignin/pkg/signin"
)

const masterSecret = "demo-only-master-secret-do-not-use-in-production"

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	principalHashKey, principalBlockKey := cookiejar.DeriveKeys([]byte(masterSecret), "principal")
	principalJWTKey, _ := cookiejar.DeriveKeys([]byte(masterSecret), "principal-jwt")
	stateHashKey, stateBlockKey := cookiejar.DeriveKeys([]byte(masterSecret), "challenge-state")
	signInHashKey, signInBlockKey := cookiejar.DeriveKeys([]byte(masterSecret), "signin-message")
	signOutHashKey, signOutBlockKey := cookiejar.DeriveKeys([]byte(masterSecret), "signout-message")
	sessionHashKey, sessionBlockKey := cookiejar.DeriveKeys([]byte(masterSecret), "session")
	lastUserHashKey, lastUserBlockKey := cookiejar.DeriveKeys([]byte(masterSecret), "last-username")

	stateStore := cookiejar.NewCookieStore[signin.ChallengeProperties]("idsignin.state", stateHashKey, stateBlockKey, 10*time.Minute, false)

	bridge := hostbridge.NewCookieBridge(principalHashKey, principalBlockKey, principalJWTKey, stateStore, 30*24*time.Hour, false)
	bridge.Register(hostbridge.NewGoogleProvider("demo-google-client-id", mockGoogleIdentity))

	eventSink := events.NewMultiSink(events.NewPrometheusSink(), events.NewSlogSink(log))
	httpMetrics := events.NewHTTPMetrics()

	cfg := &signin.Config{
		BasePath:                 "/signin",
		Host:                     "https://idsignin.example.local",
		SiteName:                 "idsignin demo",
		SiteURL:                  "https://idsignin.example.local",
		EnableLocalLogin:         true,
		EnableSignOutPrompt:      true,
		EnableLoginHint:          true,
		PersistentLoginIsDefault: false,
		RememberMeDuration:       30 * 24 * time.Hour,
		AuthnSessionTimeout:      15 * time.Minute,

		UserService: newMockUserService(),
		ClientStore: newMockClientStore(),
		ViewService: view.NewRenderer(),
		EventSink:   eventSink,
		Bridge:      bridge,

		SignInStore:  cookiejar.NewCookieStore[signin.SignInMessage]("idsignin.signin", signInHashKey, signInBlockKey, 15*time.Minute, false),
		SignOutStore: cookiejar.NewCookieStore[signin.SignOutMessage]("idsignin.signout", signOutHashKey, signOutBlockKey, 15*time.Minute, false),

		SessionCookie:      cookiejar.NewCookieValueStore("idsignin.session", sessionHashKey, sessionBlockKey, 30*24*time.Hour, false),
		LastUserNameCookie: cookiejar.NewCookieValueStore("idsignin.lastuser", lastUserHashKey, lastUserBlockKey, 365*24*time.Hour, false),

		SessionStore: sessionstore.NewMemoryStore(),
	}

	router := chi.NewRouter()
	router.Use(httpMetrics.Middleware)
	flow.RegisterRoutes(router, cfg, log)
	signout.RegisterRoutes(router, cfg, log)
	router.Handle("/metrics", promhttp.Handler())

	log.Info("starting idsignin demo server", slog.String("addr", ":8080"))
	if err := http.ListenAndServe(":8080", router); err != nil {
		log.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// mockGoogleIdentity simulates the authorization-code exchange and
// userinfo lookup a real Google provider would perform.
func mockGoogleIdentity(r *http.Request, state string) (signin.ExternalIdentity, error) {
	return signin.ExternalIdentity{
		Provider:   "google",
		ProviderID: "demo-google-subject",
		Claims: []signin.Claim{
			{Type: signin.ClaimSubject, Value: "demo-google-subject", Issuer: "google"},
			{Type: signin.ClaimName, Value: "Demo Googler", Issuer: "google"},
		},
	}, nil
}

// mockUserService validates a single hard-coded credential pair and maps
// any external identity straight through, matching the teacher's own
// "AddClient"/mocked-entities demo style rather than a real credential
// store.
type mockUserService struct {
	username       string
	hashedPassword []byte
}

func newMockUserService() *mockUserService {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	return &mockUserService{username: "alice", hashedPassword: hashed}
}

func (s *mockUserService) PreAuthenticate(ctx context.Context, msg signin.SignInMessage) (*signin.AuthenticateResult, error) {
	return nil, nil
}

func (s *mockUserService) AuthenticateLocal(ctx context.Context, username, password string, msg signin.SignInMessage) (*signin.AuthenticateResult, error) {
	if username != s.username {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword(s.hashedPassword, []byte(password)) != nil {
		return nil, nil
	}
	principal := signin.NewPrincipal(
		signin.Claim{Type: signin.ClaimSubject, Value: username},
		signin.Claim{Type: signin.ClaimName, Value: "Alice Example"},
		signin.Claim{Type: signin.ClaimAuthMethod, Value: "pwd"},
		signin.Claim{Type: signin.ClaimAuthTime, Value: time.Now().UTC().Format(time.RFC3339)},
		signin.Claim{Type: signin.ClaimIdP, Value: "local"},
	)
	return signin.Full(principal), nil
}

func (s *mockUserService) AuthenticateExternal(ctx context.Context, identity signin.ExternalIdentity, msg signin.SignInMessage) (*signin.AuthenticateResult, error) {
	principal := identity.Principal()
	principal.AddClaim(signin.ClaimAuthMethod, "external", "")
	principal.AddClaim(signin.ClaimAuthTime, time.Now().UTC().Format(time.RFC3339), "")
	principal.AddClaim(signin.ClaimIdP, identity.Provider, "")
	return signin.Full(principal), nil
}

func (s *mockUserService) SignOut(ctx context.Context, principal *signin.Principal) error {
	return nil
}

var _ signin.UserService = (*mockUserService)(nil)

// mockClientStore recognizes a single demo relying party, matching the
// teacher's single-client demo setup.
type mockClientStore struct {
	client signin.Client
}

func newMockClientStore() *mockClientStore {
	return &mockClientStore{
		client: signin.Client{
			ID:               "demo-client",
			Name:             "Demo Client",
			AllowedProviders: []string{"google"},
			LoginPageLinks: []signin.Link{
				{Text: "Forgot your password?", Href: "https://idsignin.example.local/account/forgot-password"},
			},
		},
	}
}

func (s *mockClientStore) Client(ctx context.Context, clientID string) (signin.Client, bool) {
	if clientID != s.client.ID {
		return signin.Client{}, false
	}
	return s.client, true
}

func (s *mockClientStore) IsValidIdentityProvider(ctx context.Context, clientID, provider string) bool {
	if clientID != s.client.ID {
		return false
	}
	for _, p := range s.client.AllowedProviders {
		if p == provider {
			return true
		}
	}
	return false
}

var _ signin.ClientStore = (*mockClientStore)(nil)
