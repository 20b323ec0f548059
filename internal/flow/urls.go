package flow

import (
	"fmt"
	"strings"

	"github.com/signinflow/idsignin/internal/flowctx"
)

// externalChallengeURL builds the GET /external link the login page and
// the auto-redirect rule (P7) send the browser to.
func externalChallengeURL(ctx flowctx.Context, signInID, provider string) string {
	return fmt.Sprintf("%s/external?signin=%s&provider=%s", ctx.BaseURL(), signInID, provider)
}

// callbackURL is the RedirectUri passed to the host challenge (spec.md
// section 4.1, external challenge step 4).
func callbackURL(ctx flowctx.Context) string {
	return ctx.BaseURL() + "/callback"
}

// resumeURL builds the partial-login continuation URL for resumeID
// (spec.md section 3, "Resume claim family").
func resumeURL(ctx flowctx.Context, resumeID string) string {
	return fmt.Sprintf("%s/resume?resume=%s", ctx.BaseURL(), resumeID)
}

// partialRedirectURL implements spec.md section 4.1 SignInAndRedirect step
// 3: a partial-sign-in redirect path prefixed with "~/" is rewritten
// against the identity server's own base path; any other path is treated
// as already absolute.
func partialRedirectURL(ctx flowctx.Context, path string) string {
	if strings.HasPrefix(path, "~/") {
		return ctx.Host + ctx.BasePath + "/" + strings.TrimPrefix(path, "~/")
	}
	return path
}
