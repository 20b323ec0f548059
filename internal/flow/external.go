package flow

import (
	"github.com/signinflow/idsignin/internal/flowctx"
	"github.com/signinflow/idsignin/pkg/signin"
)

const (
	challengePropSignInID = "signInId"
	challengePropProvider = "provider"
)

// LoginExternal handles GET /external: state S3 ExternalChallenge (spec.md
// section 4.1). The actual redirect to the provider is issued by
// ctx.Bridge.Challenge; unlike a challenge-result-based host framework,
// this bridge performs the 302 itself rather than asking the controller to
// answer 401 and rely on middleware to rewrite it (see DESIGN.md).
func LoginExternal(ctx flowctx.Context) {
	signInID, ok := ctx.QueryParam("signin")
	if !ok {
		ctx.RenderErrorPage("Your sign-in request is invalid.")
		return
	}

	provider, ok := ctx.QueryParam("provider")
	if !ok {
		ctx.RenderErrorPage("Your sign-in request is invalid.")
		return
	}

	msg, ok := loadSignInMessage(ctx, signInID)
	if !ok {
		ctx.RenderErrorPage("Your sign-in session could not be found. Please start again.")
		return
	}

	if !ctx.ClientStore.IsValidIdentityProvider(ctx.Ctx(), msg.ClientID, provider) {
		ctx.EmitEvent(signin.Event{Kind: signin.EventEndpointFailure, ClientID: msg.ClientID, Provider: provider, Endpoint: "Authenticate"})
		ctx.RenderErrorPage("This sign-in method is not available for this application.")
		return
	}

	props := signin.ChallengeProperties{
		challengePropSignInID: signInID,
		challengePropProvider: provider,
	}

	if err := ctx.Bridge.Challenge(ctx.Response, ctx.Request, provider, callbackURL(ctx), props); err != nil {
		ctx.Log.Error("external challenge failed", "provider", provider, "error", err)
		ctx.EmitEvent(signin.Event{Kind: signin.EventEndpointFailure, ClientID: msg.ClientID, Provider: provider, Endpoint: "Authenticate"})
		ctx.RenderErrorPage("This sign-in method is not available for this application.")
	}
}

// LoginExternalCallback handles GET /callback: state S4 ExternalCallback
// (spec.md section 4.1).
func LoginExternalCallback(ctx flowctx.Context) {
	// spec.md section 4.1 "External callback" step 1: truncate an oversize
	// error to MaxInputParamLength rather than bound-rejecting it outright,
	// so padding ?error= past the bound cannot be used to skip this branch
	// and fall into normal callback processing.
	if providerError := ctx.TruncatedQueryParam("error"); providerError != "" {
		ctx.EmitEvent(signin.Event{Kind: signin.EventExternalLoginError, Message: providerError})
		ctx.RenderErrorPage("The external sign-in provider reported an error: " + providerError)
		return
	}

	props, ok := ctx.Bridge.ChallengeProperties(ctx.Request)
	if !ok {
		ctx.RenderErrorPage("Your sign-in request could not be matched to a challenge.")
		return
	}

	signInID := props[challengePropSignInID]
	provider := props[challengePropProvider]

	msg, ok := loadSignInMessage(ctx, signInID)
	if !ok {
		ctx.RenderErrorPage("Your sign-in session could not be found. Please start again.")
		return
	}

	principal, ok := ctx.Bridge.ExternalIdentity(ctx.Request)
	if !ok {
		renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{errorMessage: "We couldn't find a matching account for that sign-in."})
		return
	}

	identity, ok := externalIdentityFrom(principal, provider)
	if !ok {
		renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{errorMessage: "We couldn't find a matching account for that sign-in."})
		return
	}

	completeExternalAuthentication(ctx, signInID, msg, identity)
}

// externalIdentityFrom reduces a bridge-produced principal to an
// ExternalIdentity by selecting the subject claim (spec.md section 3:
// "providerId is the claim value of the unique-subject claim, provider is
// its issuer"). A subject claim with no issuer falls back to the provider
// name recorded in the challenge properties.
func externalIdentityFrom(principal *signin.Principal, provider string) (signin.ExternalIdentity, bool) {
	subject, ok := principal.Claim(signin.ClaimSubject)
	if !ok {
		return signin.ExternalIdentity{}, false
	}

	if subject.Issuer != "" {
		provider = subject.Issuer
	}

	return signin.ExternalIdentity{
		Provider:   provider,
		ProviderID: subject.Value,
		Claims:     principal.Claims,
	}, true
}

func completeExternalAuthentication(ctx flowctx.Context, signInID string, msg signin.SignInMessage, identity signin.ExternalIdentity) {
	result, err := ctx.UserService.AuthenticateExternal(ctx.Ctx(), identity, msg)
	if err != nil {
		ctx.EmitEvent(signin.Event{Kind: signin.EventExternalLoginFailure, ClientID: msg.ClientID, Provider: identity.Provider, Message: err.Error()})
		renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{errorMessage: err.Error()})
		return
	}

	if result == nil {
		ctx.EmitEvent(signin.Event{Kind: signin.EventExternalLoginFailure, ClientID: msg.ClientID, Provider: identity.Provider})
		renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{errorMessage: "We couldn't sign you in with that account."})
		return
	}

	if result.IsError() {
		ctx.EmitEvent(signin.Event{Kind: signin.EventExternalLoginFailure, ClientID: msg.ClientID, Provider: identity.Provider, Message: result.Message()})
		renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{errorMessage: result.Message()})
		return
	}

	ctx.EmitEvent(signin.Event{Kind: signin.EventExternalLoginSuccess, ClientID: msg.ClientID, Provider: identity.Provider})
	signInAndRedirect(ctx, signInID, msg, result, nil)
}
