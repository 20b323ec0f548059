package hostbridge

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/signinflow/idsignin/pkg/signin"
)

// principalCookie stores one opaque string (a signed principal JWT) under a
// fixed cookie name, honoring signin.CookieOptions: a non-persistent sign-in
// gets a browser-session cookie (no MaxAge), a persistent one gets either
// opts.ExpiresAt or, absent that, defaultMaxAge.
type principalCookie struct {
	name           string
	codec          *securecookie.SecureCookie
	defaultMaxAge  time.Duration
	secure         bool
}

func newPrincipalCookie(name string, hashKey, blockKey []byte, defaultMaxAge time.Duration, secure bool) *principalCookie {
	return &principalCookie{
		name:          name,
		codec:         securecookie.New(hashKey, blockKey),
		defaultMaxAge: defaultMaxAge,
		secure:        secure,
	}
}

func (s *principalCookie) Put(w http.ResponseWriter, value string, opts signin.CookieOptions) error {
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

	switch {
	case !opts.Persistent:
		// Browser-session cookie: no MaxAge, no Expires.
	case opts.ExpiresAt != nil:
		cookie.Expires = time.Unix(*opts.ExpiresAt, 0).UTC()
	default:
		cookie.MaxAge = int(s.defaultMaxAge.Seconds())
	}

	http.SetCookie(w, cookie)
	return nil
}

func (s *principalCookie) Read(r *http.Request) (string, bool) {
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

func (s *principalCookie) Clear(w http.ResponseWriter) {
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
