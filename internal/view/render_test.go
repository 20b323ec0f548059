package view

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signinflow/idsignin/pkg/signin"
)

func TestRenderLoginIncludesAntiForgeryTokenAndProviders(t *testing.T) {
	// Given.
	r := NewRenderer()

	// When.
	body, err := r.RenderLogin(context.Background(), signin.LoginViewModel{
		SiteName:         "Acme",
		SignInID:         "sign-in-1",
		AntiForgeryToken: "tok-123",
		Username:         "alice",
		ExternalProviders: []signin.ExternalProviderLink{
			{Name: "google", DisplayName: "Google", Href: "/signin/external?signin=sign-in-1&provider=google"},
		},
	})

	// Then.
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "Acme")
	assert.Contains(t, html, "tok-123")
	assert.Contains(t, html, "value=\"alice\"")
	assert.Contains(t, html, "Sign in with Google")
	assert.True(t, strings.Contains(html, "signin=sign-in-1&amp;provider=google") || strings.Contains(html, "signin=sign-in-1&provider=google"))
}

func TestRenderErrorEscapesMessage(t *testing.T) {
	// Given/When.
	r := NewRenderer()
	body, err := r.RenderError(context.Background(), signin.ErrorViewModel{Message: "<script>alert(1)</script>"})

	// Then. html/template auto-escapes; no raw script tag survives.
	require.NoError(t, err)
	assert.NotContains(t, string(body), "<script>")
}

func TestRenderLoggedOutIncludesIFrames(t *testing.T) {
	// Given/When.
	r := NewRenderer()
	body, err := r.RenderLoggedOut(context.Background(), signin.LoggedOutViewModel{
		IFrameURLs:            []string{"https://rp-a.example/fc-logout", "https://rp-b.example/fc-logout"},
		PostLogoutRedirectURL: "https://rp-a.example/done",
		ClientName:            "RP A",
	})

	// Then.
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "rp-a.example/fc-logout")
	assert.Contains(t, html, "rp-b.example/fc-logout")
	assert.Contains(t, html, "rp-a.example/done")
}
