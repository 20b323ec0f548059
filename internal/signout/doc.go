// Package signout implements the logout subgraph: GET /logout's
// prompt-or-forward decision and POST /logout's cleanup (spec.md section
// 4.2), grounded on luikyv-go-oidc's internal/logout package structure
// (a thin api.go route table over a handful of request-scoped functions).
package signout
