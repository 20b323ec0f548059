package flowctx

import (
	"crypto/subtle"
	"net/http"

	"github.com/signinflow/idsignin/internal/strutil"
)

const (
	antiForgeryCookieName  = "idsignin.xsrf"
	antiForgeryFormField   = "__antiForgeryToken"
	antiForgeryTokenLength = 32
)

// IssueAntiForgeryToken mints a fresh token, sets it as a short-lived
// non-HttpOnly cookie (it must be readable from the form that echoes it
// back), and returns the value to embed in the rendered form's hidden
// field. Double-submit: a POST is valid only if the cookie and the form
// field agree (spec.md section 4.1, "every POST").
func (c Context) IssueAntiForgeryToken() string {
	token := strutil.Random(antiForgeryTokenLength)
	http.SetCookie(c.Response, &http.Cookie{
		Name:     antiForgeryCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// hasValidAntiForgeryToken implements the double-submit check: the cookie
// value and the form field must both be present and match, using a
// constant-time comparison.
func hasValidAntiForgeryToken(r *http.Request) bool {
	cookie, err := r.Cookie(antiForgeryCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	field := r.FormValue(antiForgeryFormField)
	if field == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(field)) == 1
}

// RequireAntiForgeryToken is middleware mounted on every POST route named
// in spec.md section 6 (P2: rejected before any user-service call).
func RequireAntiForgeryToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || !hasValidAntiForgeryToken(r) {
			http.Error(w, "invalid or missing anti-forgery token", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}
