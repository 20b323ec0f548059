package hostbridge

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/signinflow/idsignin/pkg/signin"
)

// oauth2Provider backs the reference providers built by NewGoogleProvider
// and NewGitHubProvider, grounded on openshift-oauth-server's google/github
// external providers (pkg/oauth/external/{google,github}): a Challenge leg
// that redirects to the provider's authorize endpoint with the
// round-tripped state, and an Identity leg that returns whatever the
// injected identityFetch function produces. The real token exchange
// (osincli-based in the teacher) is host infrastructure out of this
// subsystem's scope; no profile mapping or network call happens here, so
// tests substitute a fake provider by passing their own identityFetch.
type oauth2Provider struct {
	name          string
	authorizeURL  string
	clientID      string
	identityFetch func(r *http.Request, state string) (signin.ExternalIdentity, error)
}

func (p *oauth2Provider) Name() string { return p.name }

func (p *oauth2Provider) Challenge(w http.ResponseWriter, r *http.Request, redirectURI, state string) error {
	u, err := url.Parse(p.authorizeURL)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("client_id", p.clientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("state", state)
	q.Set("response_type", "code")
	u.RawQuery = q.Encode()

	http.Redirect(w, r, u.String(), http.StatusFound)
	return nil
}

func (p *oauth2Provider) Identity(r *http.Request, state string) (signin.ExternalIdentity, error) {
	if p.identityFetch == nil {
		return signin.ExternalIdentity{}, fmt.Errorf("hostbridge: %s: no identity fetch configured", p.name)
	}
	return p.identityFetch(r, state)
}

// NewGoogleProvider builds a reference Google-flavored Provider. identityFetch
// performs (or, in tests, simulates) the authorization-code exchange and
// userinfo lookup.
func NewGoogleProvider(clientID string, identityFetch func(r *http.Request, state string) (signin.ExternalIdentity, error)) Provider {
	return &oauth2Provider{
		name:          "google",
		authorizeURL:  "https://accounts.google.com/o/oauth2/v2/auth",
		clientID:      clientID,
		identityFetch: identityFetch,
	}
}

// NewGitHubProvider builds a reference GitHub-flavored Provider. As with
// NewGoogleProvider, identityFetch supplies the identity and its claims.
func NewGitHubProvider(clientID string, identityFetch func(r *http.Request, state string) (signin.ExternalIdentity, error)) Provider {
	return &oauth2Provider{
		name:          "github",
		authorizeURL:  "https://github.com/login/oauth/authorize",
		clientID:      clientID,
		identityFetch: identityFetch,
	}
}

var (
	_ Provider = (*oauth2Provider)(nil)
)
