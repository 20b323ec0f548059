package cookiejar

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// envelope binds a payload to the id it was stored under, so that reading
// cookie C with id X fails if the cookie's own recorded id does not match
// X (spec.md section 5, cross-flow confusion protection).
type envelope[T any] struct {
	ID    string `json:"id"`
	Value T      `json:"value"`
}

// CookieStore is the default, production MessageStore[T] backend: each Put
// issues an HTTP cookie named "<prefix>.<id>", authenticated and encrypted
// with gorilla/securecookie.
type CookieStore[T any] struct {
	prefix string
	codec  *securecookie.SecureCookie
	maxAge time.Duration
	secure bool
}

// NewCookieStore builds a CookieStore. hashKey/blockKey should come from
// DeriveKeys, one derivation per distinct prefix.
func NewCookieStore[T any](prefix string, hashKey, blockKey []byte, maxAge time.Duration, secure bool) *CookieStore[T] {
	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(int(maxAge.Seconds()))
	return &CookieStore[T]{prefix: prefix, codec: codec, maxAge: maxAge, secure: secure}
}

func (s *CookieStore[T]) cookieName(id string) string {
	return s.prefix + "." + id
}

// Put issues the envelope cookie for id.
func (s *CookieStore[T]) Put(w http.ResponseWriter, id string, value T) error {
	name := s.cookieName(id)
	encoded, err := s.codec.Encode(name, envelope[T]{ID: id, Value: value})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.maxAge.Seconds()),
	})
	return nil
}

// Read recovers the envelope for id, if present, valid, and bound to id.
func (s *CookieStore[T]) Read(r *http.Request, id string) (T, bool) {
	var zero T
	name := s.cookieName(id)
	cookie, err := r.Cookie(name)
	if err != nil {
		return zero, false
	}

	var env envelope[T]
	if err := s.codec.Decode(name, cookie.Value, &env); err != nil {
		return zero, false
	}

	if env.ID != id {
		return zero, false
	}

	return env.Value, true
}

// Clear idempotently removes the envelope cookie for id.
func (s *CookieStore[T]) Clear(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName(id),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
