// Package flowctx provides the request-scoped Context every flow handler
// runs with: the response writer, the request, and the shared Config,
// bundled the way luikyv-go-oidc's internal/oidc.Context bundles a request
// with its Configuration.
package flowctx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/signinflow/idsignin/pkg/signin"
)

// Context is instantiated fresh for every HTTP request (spec.md section 5:
// "the controller is request-scoped"). It carries no state beyond the
// request/response pair and the shared, read-only Config.
type Context struct {
	Response http.ResponseWriter
	Request  *http.Request
	*signin.Config

	Log *slog.Logger
}

// New builds a Context for the given request.
func New(w http.ResponseWriter, r *http.Request, cfg *signin.Config, log *slog.Logger) Context {
	return Context{
		Response: w,
		Request:  r,
		Config:   cfg,
		Log:      log,
	}
}

// Handler adapts a Context-taking function into an http.HandlerFunc, the
// way oidc.Handler does for luikyv-go-oidc's endpoint functions.
func Handler(cfg *signin.Config, log *slog.Logger, exec func(ctx Context)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exec(New(w, r, cfg, log))
	}
}

// Ctx returns the request's context.Context, for cancellation propagation
// into downstream collaborator calls.
func (c Context) Ctx() context.Context {
	return c.Request.Context()
}

// Redirect issues the 302 every successful transition in spec.md section
// 4.1/4.2 ends with.
func (c Context) Redirect(url string) {
	http.Redirect(c.Response, c.Request, url, http.StatusFound)
}

// BaseURL is this identity server's externally visible origin plus its
// mount point, used to build the external-callback redirect URI and the
// partial-login resume URL.
func (c Context) BaseURL() string {
	return c.Host + c.BasePath
}

// QueryParam reads a query parameter and enforces spec.md's
// MaxInputParamLength bound (P1): every user-controlled string parameter
// longer than the bound is rejected before any cookie read, event
// emission, or user-service call.
func (c Context) QueryParam(name string) (string, bool) {
	value := c.Request.URL.Query().Get(name)
	if len(value) > signin.MaxInputParamLength {
		return "", false
	}
	return value, true
}

// OptionalQueryParam reads a query parameter spec.md marks optional (the
// logout routes' `id?`): an absent parameter is not an error and yields
// ("", true), but a parameter that is present and exceeds
// MaxInputParamLength still triggers P1's mandatory rejection, the same as
// QueryParam. Its results are the same as QueryParam's, which also reports
// an absent parameter as ("", true).
func (c Context) OptionalQueryParam(name string) (string, bool) {
	query := c.Request.URL.Query()
	if !query.Has(name) {
		return "", true
	}
	value := query.Get(name)
	if len(value) > signin.MaxInputParamLength {
		return "", false
	}
	return value, true
}

// TruncatedQueryParam reads a query parameter and truncates it to
// MaxInputParamLength instead of rejecting it outright. This is only for
// the one parameter spec.md says to truncate rather than bound-reject: the
// external provider's callback ?error= (spec.md section 4.1 "External
// callback" step 1), which must still drive the ExternalLoginError/error-
// page path even when padded past the bound, rather than silently falling
// through to normal callback processing the way an outright QueryParam
// rejection would.
func (c Context) TruncatedQueryParam(name string) string {
	value := c.Request.URL.Query().Get(name)
	if len(value) > signin.MaxInputParamLength {
		return value[:signin.MaxInputParamLength]
	}
	return value
}

// FormValue reads a POST form field with the same bound as QueryParam.
// Request.FormValue parses the form itself if ParseForm has not been called
// yet (the anti-forgery middleware calls it first on the POST routes).
func (c Context) FormValue(name string) (string, bool) {
	value := c.Request.FormValue(name)
	if len(value) > signin.MaxInputParamLength {
		return "", false
	}
	return value, true
}
