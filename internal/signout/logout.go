package signout

import (
	"github.com/signinflow/idsignin/internal/flowctx"
	"github.com/signinflow/idsignin/pkg/signin"
)

// Logout handles GET /logout: the prompt-or-forward decision (spec.md
// section 4.2).
func Logout(ctx flowctx.Context) {
	signOutID, ok := ctx.OptionalQueryParam("id")
	if !ok {
		ctx.RenderErrorPage("Your sign-out request is invalid.")
		return
	}

	if _, authenticated := ctx.Bridge.Identity(ctx.Request, signin.SchemePrimary); !authenticated {
		performLogout(ctx, signOutID)
		return
	}

	if msg, found := ctx.SignOutStore.Read(ctx.Request, signOutID); found && msg.ClientID != "" {
		performLogout(ctx, signOutID)
		return
	}

	if !ctx.EnableSignOutPrompt {
		performLogout(ctx, signOutID)
		return
	}

	renderPrompt(ctx, signOutID)
}

// LogoutSubmit handles POST /logout: the cleanup steps (spec.md section
// 4.2), guarded by the anti-forgery middleware.
func LogoutSubmit(ctx flowctx.Context) {
	signOutID, ok := ctx.OptionalQueryParam("id")
	if !ok {
		ctx.RenderErrorPage("Your sign-out request is invalid.")
		return
	}
	performLogout(ctx, signOutID)
}

func renderPrompt(ctx flowctx.Context, signOutID string) {
	msg, _ := ctx.SignOutStore.Read(ctx.Request, signOutID)

	var clientName string
	if client, ok := ctx.ClientStore.Client(ctx.Ctx(), msg.ClientID); ok {
		clientName = client.Name
	}

	ctx.RenderLogoutPage(signin.LogoutViewModel{
		ClientName:       clientName,
		AntiForgeryToken: ctx.IssueAntiForgeryToken(),
		SignOutID:        signOutID,
	})
}

// performLogout implements spec.md section 4.2's POST /logout steps 1-6.
func performLogout(ctx flowctx.Context, signOutID string) {
	principal, authenticated := ctx.Bridge.Identity(ctx.Request, signin.SchemePrimary)

	if ctx.SessionCookie != nil {
		ctx.SessionCookie.Clear(ctx.Response)
	}

	msg, _ := ctx.SignOutStore.Read(ctx.Request, signOutID)
	if signOutID != "" {
		ctx.SignOutStore.Clear(ctx.Response, signOutID)
	}

	// Step 3/4: clearing every built-in scheme already clears the
	// external-provider cookie regardless of which provider issued it
	// (see DESIGN.md "Fixed three-scheme bridge model"); there is no
	// separate per-provider scheme to additionally sign out of here.
	if err := ctx.Bridge.SignOut(ctx.Response, ctx.Request, signin.Schemes...); err != nil {
		ctx.Log.Error("sign out failed", "error", err)
	}

	var clientName string
	if client, ok := ctx.ClientStore.Client(ctx.Ctx(), msg.ClientID); ok {
		clientName = client.Name
	}

	if authenticated {
		if err := ctx.UserService.SignOut(ctx.Ctx(), principal); err != nil {
			ctx.Log.Error("user service sign out failed", "error", err)
		}
		ctx.EmitEvent(signin.Event{Kind: signin.EventLogout, ClientID: msg.ClientID})
	}

	var iframeURLs []string
	if ctx.IFrameURLs != nil {
		iframeURLs = ctx.IFrameURLs.IFrameURLs(ctx.Ctx(), msg)
	}

	ctx.RenderLoggedOutPage(signin.LoggedOutViewModel{
		IFrameURLs:            iframeURLs,
		PostLogoutRedirectURL: msg.ReturnURL,
		ClientName:            clientName,
	})
}
