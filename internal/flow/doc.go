// Package flow implements the authentication state machine: the five
// handlers (Login GET/POST, LoginExternal GET, LoginExternalCallback GET,
// ResumeLoginFromRedirect GET) that compose the cookie-bound message
// protocol and the host auth bridge into S0 Start through S6 FullSignIn /
// S5 Partial.
package flow
