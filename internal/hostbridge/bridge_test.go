package hostbridge

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signinflow/idsignin/internal/cookiejar"
	"github.com/signinflow/idsignin/pkg/signin"
)

func newTestBridge() *CookieBridge {
	hashKey, blockKey := cookiejar.DeriveKeys([]byte("test-master-secret"), "principal")
	jwtKey, _ := cookiejar.DeriveKeys([]byte("test-master-secret"), "principal-jwt")
	stateHashKey, stateBlockKey := cookiejar.DeriveKeys([]byte("test-master-secret"), "challenge-state")
	stateStore := cookiejar.NewCookieStore[signin.ChallengeProperties]("idsignin.state", stateHashKey, stateBlockKey, 10*time.Minute, false)

	return NewCookieBridge(hashKey, blockKey, jwtKey, stateStore, 30*24*time.Hour, false)
}

func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCookieBridgeSignInAndReadBack(t *testing.T) {
	bridge := newTestBridge()

	identity := signin.NewPrincipal(signin.Claim{Type: signin.ClaimSubject, Value: "alice"})

	rec := httptest.NewRecorder()
	require.NoError(t, bridge.SignIn(rec, httptest.NewRequest(http.MethodGet, "/", nil), signin.SchemePartial, identity, signin.CookieOptions{}))

	req := requestWithCookies(rec)
	got, ok := bridge.PartialSignInIdentity(req)
	require.True(t, ok)
	assert.Equal(t, "alice", got.ClaimValue(signin.ClaimSubject))

	_, ok = bridge.ExternalIdentity(req)
	assert.False(t, ok, "the partial scheme's cookie must not satisfy the external scheme's read")
}

func TestCookieBridgeChallengeRoundTripsProperties(t *testing.T) {
	bridge := newTestBridge()
	bridge.Register(NewGoogleProvider("client-1", nil))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/external?provider=google", nil)
	props := signin.ChallengeProperties{"signInId": "sign-in-1"}

	require.NoError(t, bridge.Challenge(rec, req, "google", "https://idp.example/callback", props))

	location := rec.Result().Header.Get("Location")
	assert.Contains(t, location, "accounts.google.com")

	// Simulate the provider round-tripping the state value back as a query
	// parameter on the callback leg.
	parsedLocation, err := url.Parse(location)
	require.NoError(t, err)
	state := parsedLocation.Query().Get("state")
	require.NotEmpty(t, state)

	callback := requestWithCookies(rec)
	callback.URL = &url.URL{Path: "/external/callback", RawQuery: "state=" + state}

	got, ok := bridge.ChallengeProperties(callback)
	require.True(t, ok)
	assert.Equal(t, "sign-in-1", got["signInId"])
}

func TestCookieBridgeExternalIdentityExchangesThroughTheRegisteredProvider(t *testing.T) {
	bridge := newTestBridge()
	bridge.Register(NewGoogleProvider("client-1", func(r *http.Request, state string) (signin.ExternalIdentity, error) {
		assert.Equal(t, r.URL.Query().Get("state"), state)
		return signin.ExternalIdentity{
			Provider:   "google",
			ProviderID: "google-subject-1",
			Claims:     []signin.Claim{{Type: signin.ClaimSubject, Value: "google-subject-1"}},
		}, nil
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/external?provider=google", nil)
	require.NoError(t, bridge.Challenge(rec, req, "google", "https://idp.example/callback", signin.ChallengeProperties{"signInId": "sign-in-1"}))

	location, err := url.Parse(rec.Result().Header.Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)

	callback := requestWithCookies(rec)
	callback.URL = &url.URL{Path: "/external/callback", RawQuery: "state=" + state}

	principal, ok := bridge.ExternalIdentity(callback)
	require.True(t, ok)
	assert.Equal(t, "google-subject-1", principal.ClaimValue(signin.ClaimSubject))
	assert.Equal(t, "google", principal.ClaimValue(signin.ClaimIdP))

	// The bridge-reserved provider bookkeeping key must never leak out of
	// ChallengeProperties.
	props, ok := bridge.ChallengeProperties(callback)
	require.True(t, ok)
	assert.Equal(t, "sign-in-1", props["signInId"])
	_, leaked := props[bridgeProviderKey]
	assert.False(t, leaked)
}

func TestCookieBridgeSignOutClearsAllSchemesByDefault(t *testing.T) {
	bridge := newTestBridge()
	identity := signin.NewPrincipal(signin.Claim{Type: signin.ClaimSubject, Value: "alice"})

	rec := httptest.NewRecorder()
	require.NoError(t, bridge.SignIn(rec, httptest.NewRequest(http.MethodGet, "/", nil), signin.SchemePrimary, identity, signin.CookieOptions{}))

	signOutRec := httptest.NewRecorder()
	require.NoError(t, bridge.SignOut(signOutRec, httptest.NewRequest(http.MethodGet, "/", nil)))

	cleared := false
	for _, c := range signOutRec.Result().Cookies() {
		if c.Name == "idsignin.primary" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
