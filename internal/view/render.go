// Package view provides the default signin.ViewService implementation:
// html/template-based rendering of the four view models this subsystem
// assembles, grounded on luikyv-go-oidc's examples/authutil package
// (template.Must(template.ParseFS(...)), ExecuteTemplate against a named
// template per page).
package view

import (
	"bytes"
	"context"
	"embed"
	"html/template"

	"github.com/signinflow/idsignin/pkg/signin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer is the default signin.ViewService: one html/template per page,
// parsed once at construction.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded default templates. A host application
// that wants its own look can instead implement signin.ViewService
// directly; this type exists so the subsystem is usable out of the box.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.ParseFS(templatesFS, "templates/*.html"))}
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) RenderLogin(_ context.Context, model signin.LoginViewModel) ([]byte, error) {
	return r.execute("login.html", model)
}

func (r *Renderer) RenderLogout(_ context.Context, model signin.LogoutViewModel) ([]byte, error) {
	return r.execute("logout.html", model)
}

func (r *Renderer) RenderLoggedOut(_ context.Context, model signin.LoggedOutViewModel) ([]byte, error) {
	return r.execute("logged-out.html", model)
}

func (r *Renderer) RenderError(_ context.Context, model signin.ErrorViewModel) ([]byte, error) {
	return r.execute("error.html", model)
}

var _ signin.ViewService = (*Renderer)(nil)
