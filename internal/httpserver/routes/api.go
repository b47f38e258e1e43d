package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/extlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/extlink/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/extlink/internal/httpserver/mw"
)

func init() { Register("api", registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(
			mw.CORS(d.CORSOrigins),
			mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
			mw.EnforceHost(d.AllowedHosts, d.Logger),
		)

		api.Get("/convert", handlers.Convert(d))
		api.Post("/copy", handlers.Copy(d))
		api.Get("/available", handlers.Available(d))
		api.Get("/match", handlers.Match(d))

		api.Route("/mappings", func(m chi.Router) {
			m.Get("/", handlers.ListMappings(d))
			m.Post("/", handlers.AddMapping(d))
			m.Put("/{id}", handlers.UpdateMapping(d))
			m.Delete("/{id}", handlers.RemoveMapping(d))
		})

		api.Route("/history", func(h chi.Router) {
			h.Get("/", handlers.ListHistory(d))
			h.Delete("/", handlers.ClearHistory(d))
			h.Delete("/{id}", handlers.RemoveHistoryEntry(d))
		})

		api.Get("/settings", handlers.GetSettings(d))
		api.Put("/settings", handlers.PutSettings(d))
		api.Get("/button-position", handlers.GetButtonPosition(d))
		api.Put("/button-position", handlers.PutButtonPosition(d))

		api.Post("/reload", handlers.Reload(d))
	})
}
