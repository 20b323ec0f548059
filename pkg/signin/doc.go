// Package signin implements the interactive authentication endpoint of an
// OAuth2/OIDC identity provider: the HTTP-visible subsystem that drives a
// user through local credential validation, federated identity-provider
// login, partial/multi-step login resumption, and sign-out.
//
// The protocol layer (authorize endpoint) is expected to have already
// persisted a SignInMessage and redirected the browser here. Credential
// verification, client metadata, and HTML rendering are supplied by the
// host application through the UserService, ClientStore, and ViewService
// interfaces.
package signin
