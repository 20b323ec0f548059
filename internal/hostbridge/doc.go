// Package hostbridge implements signin.Bridge: the narrow capability the
// flow controller uses to reach the host's cookie/session layer without
// depending on any concrete web framework.
//
// CookieBridge keeps one principal per signin.Scheme, each as a signed JWT
// (github.com/go-jose/go-jose/v4) nested inside a securecookie envelope, so
// the principal is tamper-evident twice over: once by the cookie codec,
// once by the JWT signature, independently keyed.
package hostbridge
