package flow

import (
	"github.com/signinflow/idsignin/internal/flowctx"
	"github.com/signinflow/idsignin/pkg/signin"
)

// loadSignInMessage validates signInID and loads the message bound to it
// (spec.md section 7: "Unknown signInId cookie" → error page with
// NoSignInCookie message).
func loadSignInMessage(ctx flowctx.Context, signInID string) (signin.SignInMessage, bool) {
	if signInID == "" || len(signInID) > signin.MaxInputParamLength {
		return signin.SignInMessage{}, false
	}
	return ctx.SignInStore.Read(ctx.Request, signInID)
}

// isLocalLoginAllowed implements spec.md section 4.1 step 3: server flag
// AND, if a client is bound, the client's own EnableLocalLogin flag.
func isLocalLoginAllowed(ctx flowctx.Context, msg signin.SignInMessage) bool {
	if !ctx.EnableLocalLogin {
		return false
	}
	client, ok := ctx.ClientStore.Client(ctx.Ctx(), msg.ClientID)
	if !ok {
		return true
	}
	return client.EnableLocalLoginOrDefault(ctx.EnableLocalLogin)
}

// eligibleExternalProviders resolves the external providers this client
// may use: the client's allow-list intersected with what the host bridge
// exposes. Used by both the login-page assembler (section 4.3) and the
// single-provider auto-redirect rule (P7).
func eligibleExternalProviders(ctx flowctx.Context, signInID string, msg signin.SignInMessage) []signin.ExternalProviderLink {
	client, hasClient := ctx.ClientStore.Client(ctx.Ctx(), msg.ClientID)
	if !hasClient {
		return nil
	}

	var links []signin.ExternalProviderLink
	for _, provider := range client.AllowedProviders {
		if !ctx.ClientStore.IsValidIdentityProvider(ctx.Ctx(), msg.ClientID, provider) {
			continue
		}
		links = append(links, signin.ExternalProviderLink{
			Name:        provider,
			DisplayName: provider,
			Href:        externalChallengeURL(ctx, signInID, provider),
		})
	}
	return links
}

// resolveUsername implements spec.md section 4.3's precomputed Username:
// submitted value → LoginHint (if EnableLoginHint) → LastUserName cookie.
func resolveUsername(ctx flowctx.Context, submitted string, msg signin.SignInMessage) string {
	if submitted != "" {
		return submitted
	}
	if ctx.EnableLoginHint && msg.LoginHint != "" {
		return msg.LoginHint
	}
	if ctx.LastUserNameCookie != nil {
		if last, ok := ctx.LastUserNameCookie.Read(ctx.Request); ok {
			return last
		}
	}
	return ""
}
