package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/extlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/extlink/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/extlink/internal/httpserver/mw"
)

func init() { Register("probes", registerProbes) }

func registerProbes(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	guarded := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	guarded.Get("/readyz", handlers.Readyz(d))
	if d.Metrics != nil {
		guarded.Method("GET", "/metrics", d.Metrics.Handler())
	}
}
