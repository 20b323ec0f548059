package flow

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/signinflow/idsignin/internal/flowctx"
	"github.com/signinflow/idsignin/pkg/signin"
)

// RegisterRoutes mounts every route spec.md section 6 names for the flow
// controller onto router, under cfg.BasePath. POST /login is guarded by
// the anti-forgery middleware (P2); the rest are unconditional reads or
// redirect targets.
func RegisterRoutes(router chi.Router, cfg *signin.Config, log *slog.Logger) {
	router.Route(cfg.BasePath, func(r chi.Router) {
		r.Get("/login", flowctx.Handler(cfg, log, Login))
		r.With(flowctx.RequireAntiForgeryToken).Post("/login", flowctx.Handler(cfg, log, LoginSubmit))
		r.Get("/external", flowctx.Handler(cfg, log, LoginExternal))
		r.Get("/callback", flowctx.Handler(cfg, log, LoginExternalCallback))
		r.Get("/resume", flowctx.Handler(cfg, log, ResumeLoginFromRedirect))
	})
}
