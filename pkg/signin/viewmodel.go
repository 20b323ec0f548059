package signin

// ExternalProviderLink is a single external-provider login affordance
// rendered on the login page.
type ExternalProviderLink struct {
	Name        string
	DisplayName string
	Href        string
}

// LoginViewModel is the model handed to ViewService.RenderLogin.
type LoginViewModel struct {
	RequestID          string
	SiteName           string
	SiteURL            string
	ExternalProviders  []ExternalProviderLink
	AdditionalLinks    []Link
	ErrorMessage       string
	AllowRememberMe    bool
	RememberMe         bool
	Username           string
	AntiForgeryToken   string
	SignInID           string
}

// LogoutViewModel is the model handed to ViewService.RenderLogout (the
// sign-out confirmation prompt).
type LogoutViewModel struct {
	RequestID        string
	SiteName         string
	SiteURL          string
	ClientName       string
	AntiForgeryToken string
	SignOutID        string
}

// LoggedOutViewModel is the model handed to ViewService.RenderLoggedOut.
type LoggedOutViewModel struct {
	RequestID       string
	SiteName        string
	SiteURL         string
	IFrameURLs      []string
	PostLogoutRedirectURL string
	ClientName      string
}

// ErrorViewModel is the model handed to ViewService.RenderError.
type ErrorViewModel struct {
	RequestID string
	SiteName  string
	SiteURL   string
	Message   string
}
