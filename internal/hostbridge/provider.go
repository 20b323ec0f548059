package hostbridge

import (
	"net/http"

	"github.com/signinflow/idsignin/pkg/signin"
)

// Provider is one external identity provider the host can challenge a
// browser with, grounded on openshift-oauth-server's external.Provider /
// external.State split: the challenge leg redirects the browser away, the
// callback leg exchanges whatever the provider returns for an identity.
type Provider interface {
	// Name is the short identifier passed to signin.Bridge.Challenge and
	// recorded in SignInMessage.IdP.
	Name() string

	// Challenge redirects the browser to the external provider. state is an
	// opaque value the provider must round-trip back on the callback leg
	// (query parameter, form field, or provider-specific mechanism) so
	// Identity can correlate the callback with the challenge that started
	// it.
	Challenge(w http.ResponseWriter, r *http.Request, redirectURI, state string) error

	// Identity exchanges the callback request for an external identity.
	// Implementations validate the round-tripped state themselves.
	Identity(r *http.Request, state string) (signin.ExternalIdentity, error)
}
