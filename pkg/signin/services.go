package signin

import "context"

// UserService validates credentials and maps identities to subjects. It is
// the downstream policy collaborator: this subsystem never hashes a
// password or otherwise judges a credential itself.
type UserService interface {
	// PreAuthenticate is consulted once, at GET /login, before any page is
	// rendered or external challenge issued: it gives the host a chance to
	// recognize an already-established session (e.g. an SSO cookie the
	// host itself manages) without prompting the user at all. A nil
	// result means "no opinion" and the flow proceeds to the normal S0
	// branching (external challenge or local prompt).
	PreAuthenticate(ctx context.Context, msg SignInMessage) (*AuthenticateResult, error)
	// AuthenticateLocal validates a username/password pair against the
	// message describing the in-progress sign-in. A nil result means the
	// credentials were rejected outright.
	AuthenticateLocal(ctx context.Context, username, password string, msg SignInMessage) (*AuthenticateResult, error)
	// AuthenticateExternal maps an external identity to a subject. A nil
	// result means the identity was rejected outright.
	AuthenticateExternal(ctx context.Context, identity ExternalIdentity, msg SignInMessage) (*AuthenticateResult, error)
	// SignOut is invoked once per logout, only when the caller was
	// authenticated.
	SignOut(ctx context.Context, principal *Principal) error
}

// ClientStore resolves client-level metadata needed by the flow, in
// particular the per-client local-login and external-provider policy.
type ClientStore interface {
	// Client returns the client metadata for clientID, or ok=false if
	// unknown.
	Client(ctx context.Context, clientID string) (Client, bool)
	// IsValidIdentityProvider reports whether provider is in the client's
	// allow-list of external identity providers.
	IsValidIdentityProvider(ctx context.Context, clientID, provider string) bool
}

// Client is the subset of client metadata the flow controller consults.
type Client struct {
	ID                string
	Name              string
	EnableLocalLogin  *bool // nil means "inherit the server default"
	AllowedProviders  []string
	LoginPageLinks    []Link
}

// Link is an additional link rendered on the login page, e.g. "forgot your
// password?" or "register".
type Link struct {
	Text string
	Href string
}

// EnableLocalLoginOrDefault resolves the client-level override against the
// server-wide default.
func (c Client) EnableLocalLoginOrDefault(serverDefault bool) bool {
	if c.EnableLocalLogin == nil {
		return serverDefault
	}
	return *c.EnableLocalLogin
}

// ViewService renders the HTML pages this subsystem needs. The host
// application owns templating; this package only assembles the model
// objects passed to it.
type ViewService interface {
	RenderLogin(ctx context.Context, model LoginViewModel) ([]byte, error)
	RenderLogout(ctx context.Context, model LogoutViewModel) ([]byte, error)
	RenderLoggedOut(ctx context.Context, model LoggedOutViewModel) ([]byte, error)
	RenderError(ctx context.Context, model ErrorViewModel) ([]byte, error)
}

// EventSink receives the event surface emitted by the flow controller. A
// host application may compose several sinks (metrics, logs, audit) behind
// one EventSink.
type EventSink interface {
	Emit(ctx context.Context, event Event)
}

// EventKind enumerates the event surface named in spec.md section 6.
type EventKind string

const (
	EventPreLoginSuccess     EventKind = "PreLoginSuccess"
	EventPreLoginFailure     EventKind = "PreLoginFailure"
	EventLocalLoginSuccess   EventKind = "LocalLoginSuccess"
	EventLocalLoginFailure   EventKind = "LocalLoginFailure"
	EventExternalLoginSuccess EventKind = "ExternalLoginSuccess"
	EventExternalLoginFailure EventKind = "ExternalLoginFailure"
	EventExternalLoginError  EventKind = "ExternalLoginError"
	EventPartialLoginComplete EventKind = "PartialLoginComplete"
	EventLogout              EventKind = "Logout"
	EventEndpointFailure     EventKind = "EndpointFailure"
)

// Event is a single emission on the event surface.
type Event struct {
	Kind      EventKind
	ClientID  string
	Username  string
	Provider  string
	Endpoint  string
	Message   string
}
