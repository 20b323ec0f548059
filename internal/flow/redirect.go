package flow

import (
	"github.com/google/uuid"

	"github.com/signinflow/idsignin/internal/flowctx"
	"github.com/signinflow/idsignin/internal/sessionstore"
	"github.com/signinflow/idsignin/internal/strutil"
	"github.com/signinflow/idsignin/internal/timeutil"
	"github.com/signinflow/idsignin/pkg/signin"
)

const resumeIDLength = 24

// signInAndRedirect implements spec.md section 4.1's SignInAndRedirect: it
// issues the authentication cookie for result, mints a fresh SessionId, and
// sends the browser on to the next URL (302, via ctx.Redirect). rememberMe is nil when the subject was never prompted for
// it (spec.md P6/DESIGN NOTES "Open question" governs LastUserName
// separately; this is the persistence truth table).
func signInAndRedirect(ctx flowctx.Context, signInID string, msg signin.SignInMessage, result *signin.AuthenticateResult, rememberMe *bool) {
	// P5: clear every scheme before issuing, so a stale partial/external
	// cookie never races with the identity being issued now.
	if err := ctx.Bridge.SignOut(ctx.Response, ctx.Request, signin.Schemes...); err != nil {
		ctx.Log.Error("failed clearing auth schemes before issuance", "error", err)
		ctx.RenderErrorPage("We couldn't sign you in.")
		return
	}

	redirectURL, err := issueAuthenticationCookie(ctx, signInID, msg, result, rememberMe)
	if err != nil {
		ctx.Log.Error("failed issuing authentication cookie", "error", err)
		ctx.RenderErrorPage("We couldn't sign you in.")
		return
	}

	ctx.Redirect(redirectURL)
}

func issueAuthenticationCookie(ctx flowctx.Context, signInID string, msg signin.SignInMessage, result *signin.AuthenticateResult, rememberMe *bool) (string, error) {
	if result.IsPartial() {
		return issuePartial(ctx, signInID, result)
	}
	return issueFull(ctx, signInID, msg, result, rememberMe)
}

func issuePartial(ctx flowctx.Context, signInID string, result *signin.AuthenticateResult) (string, error) {
	resumeID := strutil.Random(resumeIDLength)
	returnURL := resumeURL(ctx, resumeID)

	principal := result.Principal()
	principal.AddClaim(signin.ClaimPartialReturn, returnURL, "")
	principal.AddClaim(signin.ResumeClaimType(resumeID), signInID, "")

	// The SignInMessage cookie is intentionally NOT cleared: it is still
	// needed when the browser re-enters at GET /resume.
	if err := ctx.Bridge.SignIn(ctx.Response, ctx.Request, signin.SchemePartial, principal, signin.CookieOptions{}); err != nil {
		return "", err
	}

	issueSessionID(ctx, principal, "")
	return partialRedirectURL(ctx, result.PartialRedirectPath()), nil
}

func issueFull(ctx flowctx.Context, signInID string, msg signin.SignInMessage, result *signin.AuthenticateResult, rememberMe *bool) (string, error) {
	ctx.SignInStore.Clear(ctx.Response, signInID)

	opts := cookieOptionsFor(ctx, rememberMe)
	principal := result.Principal()
	if err := ctx.Bridge.SignIn(ctx.Response, ctx.Request, signin.SchemePrimary, principal, opts); err != nil {
		return "", err
	}

	issueSessionID(ctx, principal, msg.ClientID)
	return msg.ReturnURL, nil
}

// cookieOptionsFor implements spec.md P6's persistence truth table:
// rememberMe == true  -> persistent, explicit expiry now + RememberMeDuration
// rememberMe == false -> non-persistent
// rememberMe == nil   -> persistent iff the server default is persistent
func cookieOptionsFor(ctx flowctx.Context, rememberMe *bool) signin.CookieOptions {
	switch {
	case rememberMe != nil && *rememberMe:
		expiresAt := timeutil.Now().Add(ctx.RememberMeDuration).Unix()
		return signin.CookieOptions{Persistent: true, ExpiresAt: &expiresAt}
	case rememberMe != nil && !*rememberMe:
		return signin.CookieOptions{Persistent: false}
	default:
		return signin.CookieOptions{Persistent: ctx.PersistentLoginIsDefault}
	}
}

// issueSessionID mints the SessionId cookie (spec.md section 3) and, if a
// SessionStore is configured, a correlating durable SessionRecord.
func issueSessionID(ctx flowctx.Context, principal *signin.Principal, clientID string) {
	if ctx.SessionCookie == nil {
		return
	}

	// Grounded on the teacher's own examples/authutil/authn.go, which mints
	// its front-channel session id the same way: sessionID := uuid.NewString().
	sessionID := uuid.NewString()
	if err := ctx.SessionCookie.Put(ctx.Response, sessionID, false); err != nil {
		ctx.Log.Error("failed issuing session id cookie", "error", err)
		return
	}

	if ctx.SessionStore == nil {
		return
	}

	record := sessionstore.SessionRecord{
		ID:        sessionID,
		Subject:   principal.ClaimValue(signin.ClaimSubject),
		ClientID:  clientID,
		IdP:       principal.ClaimValue(signin.ClaimIdP),
		CreatedAt: timeutil.Now(),
	}
	if err := ctx.SessionStore.Save(ctx.Ctx(), record); err != nil {
		ctx.Log.Error("failed saving session record", "error", err)
	}
}
