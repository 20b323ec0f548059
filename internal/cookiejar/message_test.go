package cookiejar

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signinflow/idsignin/pkg/signin"
)

func TestCookieStorePutRead(t *testing.T) {
	// Given.
	hashKey, blockKey := DeriveKeys([]byte("test-master-secret"), "signin-message")
	store := NewCookieStore[signin.SignInMessage]("idsignin.signin", hashKey, blockKey, 10*time.Minute, false)

	rec := httptest.NewRecorder()
	msg := signin.SignInMessage{ClientID: "client-1", ReturnURL: "https://rp.example/callback"}

	// When.
	err := store.Put(rec, "sign-in-id-1", msg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/login?signInId=sign-in-id-1", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	got, ok := store.Read(req, "sign-in-id-1")

	// Then.
	require.True(t, ok)
	assert.Equal(t, msg, got)
}

func TestCookieStoreReadRejectsMismatchedID(t *testing.T) {
	// Given: a cookie issued for id "a" is replayed against id "b".
	hashKey, blockKey := DeriveKeys([]byte("test-master-secret"), "signin-message")
	store := NewCookieStore[signin.SignInMessage]("idsignin.signin", hashKey, blockKey, 10*time.Minute, false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Put(rec, "a", signin.SignInMessage{ClientID: "client-1"}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	// Rename the cookie so it is presented as if it belonged to id "b".
	renamed := &http.Cookie{Name: "idsignin.signin.b", Value: cookies[0].Value}

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(renamed)

	// When.
	_, ok := store.Read(req, "b")

	// Then.
	assert.False(t, ok)
}

func TestCookieStoreReadUnknownID(t *testing.T) {
	hashKey, blockKey := DeriveKeys([]byte("test-master-secret"), "signin-message")
	store := NewCookieStore[signin.SignInMessage]("idsignin.signin", hashKey, blockKey, 10*time.Minute, false)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	_, ok := store.Read(req, "does-not-exist")
	assert.False(t, ok)
}

func TestCookieStoreClear(t *testing.T) {
	hashKey, blockKey := DeriveKeys([]byte("test-master-secret"), "signin-message")
	store := NewCookieStore[signin.SignInMessage]("idsignin.signin", hashKey, blockKey, 10*time.Minute, false)

	rec := httptest.NewRecorder()
	store.Clear(rec, "sign-in-id-1")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
