package flow

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signinflow/idsignin/pkg/signin"
)

func TestLoginExternalOversizeProviderRendersErrorWithoutChallenge(t *testing.T) {
	// P1: an oversize provider name is rejected before the allow-list check
	// or any Bridge.Challenge call.
	rig := newTestRig()
	rig.bindSignIn("sign-in-6", signin.SignInMessage{ClientID: "client-1"})
	oversize := strings.Repeat("g", signin.MaxInputParamLength+1)

	ctx, rec := rig.newCtx(http.MethodGet, "/signin/external?signin=sign-in-6&provider="+oversize)
	LoginExternal(ctx)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rig.views.lastError.Message)
	assert.Empty(t, rig.events.events)
	assert.Nil(t, rig.bridge.challengeProps)
}

func TestLoginExternalRedirectsToProvider(t *testing.T) {
	// Given. The client's allow-list includes "google".
	rig := newTestRig()
	rig.bindSignIn("sign-in-1", signin.SignInMessage{ClientID: "client-1"})
	rig.clientStore.providers["client-1|google"] = true

	// When.
	ctx, rec := rig.newCtx(http.MethodGet, "/signin/external?signin=sign-in-1&provider=google")
	LoginExternal(ctx)

	// Then.
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "google.example")
	assert.Equal(t, "sign-in-1", rig.bridge.challengeProps[challengePropSignInID])
	assert.Equal(t, "google", rig.bridge.challengeProps[challengePropProvider])
}

func TestLoginExternalRejectsDisallowedProvider(t *testing.T) {
	// Given. "github" is not in the client's allow-list.
	rig := newTestRig()
	rig.bindSignIn("sign-in-2", signin.SignInMessage{ClientID: "client-1"})

	// When.
	ctx, rec := rig.newCtx(http.MethodGet, "/signin/external?signin=sign-in-2&provider=github")
	LoginExternal(ctx)

	// Then.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rig.views.lastError.Message)
	require.Len(t, rig.events.events, 1)
	assert.Equal(t, signin.EventEndpointFailure, rig.events.events[0].Kind)
}

func TestLoginExternalRendersErrorWhenChallengeFails(t *testing.T) {
	// Given. The provider is allow-listed for the client but unknown to
	// the host bridge (e.g. not registered).
	rig := newTestRig()
	rig.bindSignIn("sign-in-3", signin.SignInMessage{ClientID: "client-1"})
	rig.clientStore.providers["client-1|google"] = true
	rig.bridge.challengeErr = errors.New("unknown provider")

	// When.
	ctx, rec := rig.newCtx(http.MethodGet, "/signin/external?signin=sign-in-3&provider=google")
	LoginExternal(ctx)

	// Then.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rig.views.lastError.Message)
}

func TestLoginExternalCallbackReportsProviderError(t *testing.T) {
	// Given/When.
	rig := newTestRig()
	ctx, rec := rig.newCtx(http.MethodGet, "/signin/callback?error=access_denied")
	LoginExternalCallback(ctx)

	// Then.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rig.views.lastError.Message, "access_denied")
	require.Len(t, rig.events.events, 1)
	assert.Equal(t, signin.EventExternalLoginError, rig.events.events[0].Kind)
}

func TestLoginExternalCallbackTruncatesOversizeProviderErrorInsteadOfBypassing(t *testing.T) {
	// P1/comment 1: padding ?error= past MaxInputParamLength must still hit
	// the error branch rather than silently falling through to normal
	// callback processing.
	rig := newTestRig()
	oversize := strings.Repeat("e", signin.MaxInputParamLength+50)

	ctx, rec := rig.newCtx(http.MethodGet, "/signin/callback?error="+oversize)
	LoginExternalCallback(ctx)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rig.views.lastError.Message, strings.Repeat("e", signin.MaxInputParamLength))
	assert.NotContains(t, rig.views.lastError.Message, oversize)
	require.Len(t, rig.events.events, 1)
	assert.Equal(t, signin.EventExternalLoginError, rig.events.events[0].Kind)
}

func TestLoginExternalCallbackCompletesFullSignIn(t *testing.T) {
	// Given. A completed challenge round trip: properties recovered, and
	// the bridge holds an external-scheme principal with a subject claim.
	rig := newTestRig()
	rig.bindSignIn("sign-in-4", signin.SignInMessage{ClientID: "client-1", ReturnURL: "https://rp.example/cb"})
	rig.bridge.challengeProps = signin.ChallengeProperties{
		challengePropSignInID: "sign-in-4",
		challengePropProvider: "google",
	}
	rig.bridge.principals[signin.SchemeExternal] = signin.NewPrincipal(
		signin.Claim{Type: signin.ClaimSubject, Value: "google-uid-1", Issuer: "google"},
	)
	rig.userService.external = func(identity signin.ExternalIdentity, msg signin.SignInMessage) (*signin.AuthenticateResult, error) {
		return signin.Full(signin.NewPrincipal(
			signin.Claim{Type: signin.ClaimSubject, Value: "alice"},
			signin.Claim{Type: signin.ClaimName, Value: "Alice"},
			signin.Claim{Type: signin.ClaimAuthMethod, Value: "google"},
			signin.Claim{Type: signin.ClaimAuthTime, Value: "0"},
			signin.Claim{Type: signin.ClaimIdP, Value: "google"},
		)), nil
	}

	// When.
	ctx, rec := rig.newCtx(http.MethodGet, "/signin/callback")
	LoginExternalCallback(ctx)

	// Then.
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://rp.example/cb", rec.Header().Get("Location"))
	require.Len(t, rig.events.events, 1)
	assert.Equal(t, signin.EventExternalLoginSuccess, rig.events.events[0].Kind)
}

func TestLoginExternalCallbackCompletesPartialSignIn(t *testing.T) {
	// Given. AuthenticateExternal returns a Partial result: the resulting
	// principal is issued under the partial scheme and the browser is
	// sent to the partial-redirect path instead of msg.ReturnURL.
	rig := newTestRig()
	rig.bindSignIn("sign-in-5", signin.SignInMessage{ClientID: "client-1", ReturnURL: "https://rp.example/cb"})
	rig.bridge.challengeProps = signin.ChallengeProperties{
		challengePropSignInID: "sign-in-5",
		challengePropProvider: "google",
	}
	rig.bridge.principals[signin.SchemeExternal] = signin.NewPrincipal(
		signin.Claim{Type: signin.ClaimSubject, Value: "google-uid-2", Issuer: "google"},
	)
	rig.userService.external = func(identity signin.ExternalIdentity, msg signin.SignInMessage) (*signin.AuthenticateResult, error) {
		return signin.Partial(signin.NewPrincipal(
			signin.Claim{Type: signin.ClaimSubject, Value: "alice"},
		), "~/mfa"), nil
	}

	// When.
	ctx, rec := rig.newCtx(http.MethodGet, "/signin/callback")
	LoginExternalCallback(ctx)

	// Then.
	assert.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	assert.Contains(t, location, "/signin/mfa")

	partial, ok := rig.bridge.principals[signin.SchemePartial]
	require.True(t, ok)
	assert.NotEmpty(t, partial.ClaimValue(signin.ClaimPartialReturn))
}
