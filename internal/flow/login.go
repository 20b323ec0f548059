package flow

import (
	"net/http"
	"strings"

	"github.com/signinflow/idsignin/internal/flowctx"
	"github.com/signinflow/idsignin/pkg/signin"
)

// Login handles GET /login: state S0 Start, branching per spec.md section
// 4.1 transitions 1-5.
func Login(ctx flowctx.Context) {
	signInID, ok := ctx.QueryParam("signin")
	if !ok {
		ctx.RenderErrorPage("Your sign-in request is invalid.")
		return
	}

	msg, ok := loadSignInMessage(ctx, signInID)
	if !ok {
		ctx.RenderErrorPage("Your sign-in session could not be found. Please start again.")
		return
	}

	result, err := ctx.UserService.PreAuthenticate(ctx.Ctx(), msg)
	if err != nil {
		ctx.Log.Error("pre-authenticate failed", "error", err)
		ctx.EmitEvent(signin.Event{Kind: signin.EventEndpointFailure, ClientID: msg.ClientID, Endpoint: "Authenticate", Message: err.Error()})
		ctx.RenderErrorPage("We couldn't sign you in.")
		return
	}

	if result != nil {
		handlePreAuthenticateResult(ctx, signInID, msg, result)
		return
	}

	if msg.IdP != "" && isExternalProviderEligible(ctx, msg.ClientID, msg.IdP) {
		ctx.Redirect(externalChallengeURL(ctx, signInID, msg.IdP))
		return
	}

	renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{})
}

func handlePreAuthenticateResult(ctx flowctx.Context, signInID string, msg signin.SignInMessage, result *signin.AuthenticateResult) {
	switch {
	case result.IsError():
		ctx.EmitEvent(signin.Event{Kind: signin.EventPreLoginFailure, ClientID: msg.ClientID, Message: result.Message()})
		ctx.RenderErrorPage(result.Message())
	default:
		ctx.EmitEvent(signin.Event{Kind: signin.EventPreLoginSuccess, ClientID: msg.ClientID})
		signInAndRedirect(ctx, signInID, msg, result, nil)
	}
}

// isExternalProviderEligible implements the client-level allow-list check
// shared by transition 4 and the external-challenge handler's step 2.
// Whether the provider is additionally configured on the host bridge is
// checked when the challenge is actually issued (External, step 3): a
// provider absent there fails with a rendered error rather than silently
// falling through to the login page here.
func isExternalProviderEligible(ctx flowctx.Context, clientID, provider string) bool {
	return ctx.ClientStore.IsValidIdentityProvider(ctx.Ctx(), clientID, provider)
}

// loginPageState carries the values a failed POST /login re-renders the
// login page with (spec.md section 4.1, local login steps 4-8).
type loginPageState struct {
	errorMessage    string
	submittedUser   string
	rememberMe      bool
	rememberMePrompt bool
}

// renderLoginPromptOrAutoRedirect implements spec.md section 4.3's login
// page assembly, including the single-eligible-provider auto-redirect and
// zero-eligible-provider error rules (P7).
func renderLoginPromptOrAutoRedirect(ctx flowctx.Context, signInID string, msg signin.SignInMessage, state loginPageState) {
	localAllowed := isLocalLoginAllowed(ctx, msg)
	providers := eligibleExternalProviders(ctx, signInID, msg)

	if !localAllowed {
		switch len(providers) {
		case 0:
			ctx.RenderErrorPage("There is no way to sign in to this application.")
			return
		case 1:
			ctx.Redirect(providers[0].Href)
			return
		}
	}

	client, _ := ctx.ClientStore.Client(ctx.Ctx(), msg.ClientID)

	username := state.submittedUser
	if username == "" {
		username = resolveUsername(ctx, "", msg)
	}

	antiForgeryToken := ctx.IssueAntiForgeryToken()

	ctx.RenderLoginPage(signin.LoginViewModel{
		SignInID:         signInID,
		ExternalProviders: providers,
		AdditionalLinks:  client.LoginPageLinks,
		ErrorMessage:     state.errorMessage,
		AllowRememberMe:  state.rememberMePrompt,
		RememberMe:       state.rememberMe,
		Username:         username,
		AntiForgeryToken: antiForgeryToken,
	})
}

// LoginSubmit handles POST /login: spec.md section 4.1 "Local login".
func LoginSubmit(ctx flowctx.Context) {
	if !ctx.EnableLocalLogin {
		ctx.Response.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	signInID, ok := ctx.QueryParam("signin")
	if !ok {
		ctx.RenderErrorPage("Your sign-in request is invalid.")
		return
	}

	msg, ok := loadSignInMessage(ctx, signInID)
	if !ok {
		ctx.RenderErrorPage("Your sign-in session could not be found. Please start again.")
		return
	}

	if !isLocalLoginAllowed(ctx, msg) {
		ctx.RenderErrorPage("Local sign-in is not available for this application.")
		return
	}

	if err := ctx.Request.ParseForm(); err != nil {
		renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{errorMessage: "Invalid username or password."})
		return
	}

	username, usernameOK := ctx.FormValue("username")
	password, passwordOK := ctx.FormValue("password")
	rememberMeRaw := ctx.Request.FormValue("rememberMe")

	if !usernameOK || !passwordOK {
		// Oversize field: re-render without error text (defense against
		// probing, spec.md section 4.1 step 7).
		renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{submittedUser: truncatedEcho(username)})
		return
	}

	trimmedUsername := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	rememberMePrompted := rememberMeRaw != ""
	rememberMe := rememberMeRaw == "true"

	if trimmedUsername == "" || trimmedPassword == "" {
		renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{
			errorMessage:     "Please enter your username and password.",
			submittedUser:    trimmedUsername,
			rememberMe:       rememberMe,
			rememberMePrompt: rememberMePrompted,
		})
		return
	}

	result, err := ctx.UserService.AuthenticateLocal(ctx.Ctx(), trimmedUsername, trimmedPassword, msg)
	if err != nil {
		ctx.EmitEvent(signin.Event{Kind: signin.EventLocalLoginFailure, ClientID: msg.ClientID, Username: trimmedUsername, Message: err.Error()})
		renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{
			errorMessage:     err.Error(),
			submittedUser:    trimmedUsername,
			rememberMe:       rememberMe,
			rememberMePrompt: rememberMePrompted,
		})
		return
	}

	if result == nil {
		ctx.EmitEvent(signin.Event{Kind: signin.EventLocalLoginFailure, ClientID: msg.ClientID, Username: trimmedUsername})
		renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{
			errorMessage:     "Invalid username or password.",
			submittedUser:    trimmedUsername,
			rememberMe:       rememberMe,
			rememberMePrompt: rememberMePrompted,
		})
		return
	}

	if result.IsError() {
		ctx.EmitEvent(signin.Event{Kind: signin.EventLocalLoginFailure, ClientID: msg.ClientID, Username: trimmedUsername, Message: result.Message()})
		renderLoginPromptOrAutoRedirect(ctx, signInID, msg, loginPageState{
			errorMessage:     result.Message(),
			submittedUser:    trimmedUsername,
			rememberMe:       rememberMe,
			rememberMePrompt: rememberMePrompted,
		})
		return
	}

	// Open question (DESIGN NOTES): LastUserName is always overwritten on
	// local success, even if unchanged from the previous value.
	if ctx.LastUserNameCookie != nil {
		_ = ctx.LastUserNameCookie.Put(ctx.Response, trimmedUsername, true)
	}
	ctx.EmitEvent(signin.Event{Kind: signin.EventLocalLoginSuccess, ClientID: msg.ClientID, Username: trimmedUsername})

	var rememberMePtr *bool
	if rememberMePrompted {
		rememberMePtr = &rememberMe
	}
	signInAndRedirect(ctx, signInID, msg, result, rememberMePtr)
}

// truncatedEcho never echoes an oversize value verbatim: it returns raw
// unchanged when it is within MaxInputParamLength and "" otherwise.
func truncatedEcho(raw string) string {
	if len(raw) > signin.MaxInputParamLength {
		return ""
	}
	return raw
}
