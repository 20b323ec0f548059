package signout

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/signinflow/idsignin/internal/flowctx"
	"github.com/signinflow/idsignin/pkg/signin"
)

// RegisterRoutes mounts GET/POST /logout under cfg.BasePath (spec.md
// section 6). POST is guarded by the anti-forgery middleware (P2).
func RegisterRoutes(router chi.Router, cfg *signin.Config, log *slog.Logger) {
	router.Route(cfg.BasePath, func(r chi.Router) {
		r.Get("/logout", flowctx.Handler(cfg, log, Logout))
		r.With(flowctx.RequireAntiForgeryToken).Post("/logout", flowctx.Handler(cfg, log, LogoutSubmit))
	})
}
