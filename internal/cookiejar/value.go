package cookiejar

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieValueStore is the single-value degenerate case of CookieStore: a
// fixed, well-known cookie name (SessionId, LastUserName) instead of a
// per-id one.
type CookieValueStore struct {
	name             string
	codec            *securecookie.SecureCookie
	persistentMaxAge time.Duration
	secure           bool
}

// NewCookieValueStore builds a CookieValueStore named name.
func NewCookieValueStore(name string, hashKey, blockKey []byte, persistentMaxAge time.Duration, secure bool) *CookieValueStore {
	return &CookieValueStore{
		name:             name,
		codec:            securecookie.New(hashKey, blockKey),
		persistentMaxAge: persistentMaxAge,
		secure:           secure,
	}
}

// Put issues the cookie. When persistent is false the cookie is a session
// cookie (no MaxAge); otherwise it is given persistentMaxAge.
func (s *CookieValueStore) Put(w http.ResponseWriter, value string, persistent bool) error {
	encoded, err := s.codec.Encode(s.name, value)
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     s.name,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if persistent {
		cookie.MaxAge = int(s.persistentMaxAge.Seconds())
	}
	http.SetCookie(w, cookie)
	return nil
}

// Read recovers the cookie's value, if present and valid.
func (s *CookieValueStore) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return "", false
	}

	var value string
	if err := s.codec.Decode(s.name, cookie.Value, &value); err != nil {
		return "", false
	}
	return value, true
}

// Clear idempotently removes the cookie.
func (s *CookieValueStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
