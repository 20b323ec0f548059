package flow

import (
	"github.com/signinflow/idsignin/internal/flowctx"
	"github.com/signinflow/idsignin/pkg/signin"
)

// ResumeLoginFromRedirect handles GET /resume: state S5 Partial re-entering
// at S4' (spec.md section 4.1 transition 8 / section 4.1 "Resume").
func ResumeLoginFromRedirect(ctx flowctx.Context) {
	resumeID, ok := ctx.QueryParam("resume")
	if !ok {
		ctx.RenderErrorPage("Your sign-in request is invalid.")
		return
	}

	principal, ok := ctx.Bridge.PartialSignInIdentity(ctx.Request)
	if !ok {
		ctx.RenderErrorPage("Your partial sign-in could not be found. Please start again.")
		return
	}

	resumeClaimType := signin.ResumeClaimType(resumeID)
	signInID := principal.ClaimValue(resumeClaimType)
	if signInID == "" {
		ctx.RenderErrorPage("Your partial sign-in could not be resumed.")
		return
	}

	msg, ok := loadSignInMessage(ctx, signInID)
	if !ok {
		ctx.RenderErrorPage("Your sign-in session could not be found. Please start again.")
		return
	}

	if principal.HasAllClaimTypes(signin.AuthenticateResultClaimTypes) {
		promoteToFullSignIn(ctx, signInID, msg, principal, resumeClaimType)
		return
	}

	resumeExternalAuthentication(ctx, signInID, msg, principal)
}

// promoteToFullSignIn implements spec.md section 4.1 "Promotion rule": the
// three bookkeeping claims are stripped before the principal is handed to
// SignInAndRedirect (P4).
func promoteToFullSignIn(ctx flowctx.Context, signInID string, msg signin.SignInMessage, principal *signin.Principal, resumeClaimType string) {
	principal.RemoveClaims(signin.ClaimPartialReturn)
	principal.RemoveClaims(signin.ClaimExternalUserID)
	principal.RemoveClaims(resumeClaimType)

	ctx.EmitEvent(signin.Event{Kind: signin.EventPartialLoginComplete, ClientID: msg.ClientID})
	signInAndRedirect(ctx, signInID, msg, signin.Full(principal), nil)
}

// resumeExternalAuthentication rebuilds the ExternalIdentity the partial
// sign-in was suspended with and re-runs AuthenticateExternal.
func resumeExternalAuthentication(ctx flowctx.Context, signInID string, msg signin.SignInMessage, principal *signin.Principal) {
	claim, ok := principal.Claim(signin.ClaimExternalUserID)
	if !ok {
		ctx.RenderErrorPage("Your partial sign-in could not be resumed.")
		return
	}

	identity := signin.ExternalIdentity{
		Provider:   claim.Issuer,
		ProviderID: claim.Value,
		Claims:     principal.Claims,
	}

	completeExternalAuthentication(ctx, signInID, msg, identity)
}
