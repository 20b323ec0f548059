package flowctx

import (
	"net/http"

	"github.com/signinflow/idsignin/pkg/signin"
)

// requestID is a best-effort correlation id surfaced in every rendered
// view model. It is not a security token; it exists so a support agent can
// match a screenshot to a log line.
func (c Context) requestID() string {
	if id := c.Request.Header.Get("X-Request-Id"); id != "" {
		return id
	}
	return ""
}

func (c Context) writeHTML(body []byte, err error, status int) {
	if err != nil {
		c.Log.Error("view render failed", "error", err)
		http.Error(c.Response, "internal error", http.StatusInternalServerError)
		return
	}
	c.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response.WriteHeader(status)
	_, _ = c.Response.Write(body)
}

// RenderErrorPage renders the generic error page (spec.md section 7): no
// echo of the offending value, message is either a controller-originated,
// already-localized string or a user-service-originated one.
func (c Context) RenderErrorPage(message string) {
	body, err := c.ViewService.RenderError(c.Ctx(), signin.ErrorViewModel{
		RequestID: c.requestID(),
		SiteName:  c.SiteName,
		SiteURL:   c.SiteURL,
		Message:   message,
	})
	c.writeHTML(body, err, http.StatusOK)
}

// RenderLoginPage renders the login page (S2 LocalPrompt).
func (c Context) RenderLoginPage(model signin.LoginViewModel) {
	model.RequestID = c.requestID()
	model.SiteName = c.SiteName
	model.SiteURL = c.SiteURL
	body, err := c.ViewService.RenderLogin(c.Ctx(), model)
	c.writeHTML(body, err, http.StatusOK)
}

// RenderLogoutPage renders the logout confirmation prompt (S7).
func (c Context) RenderLogoutPage(model signin.LogoutViewModel) {
	model.RequestID = c.requestID()
	model.SiteName = c.SiteName
	model.SiteURL = c.SiteURL
	body, err := c.ViewService.RenderLogout(c.Ctx(), model)
	c.writeHTML(body, err, http.StatusOK)
}

// RenderLoggedOutPage renders the post-logout landing page (S8).
func (c Context) RenderLoggedOutPage(model signin.LoggedOutViewModel) {
	model.RequestID = c.requestID()
	model.SiteName = c.SiteName
	model.SiteURL = c.SiteURL
	body, err := c.ViewService.RenderLoggedOut(c.Ctx(), model)
	c.writeHTML(body, err, http.StatusOK)
}

// EmitEvent forwards to the configured EventSink, filling in nothing the
// caller didn't already set: the sink is expected to be resilient to
// partially populated events (e.g. no ClientID before a SignInMessage is
// loaded).
func (c Context) EmitEvent(event signin.Event) {
	if c.EventSink == nil {
		return
	}
	c.EventSink.Emit(c.Ctx(), event)
}
