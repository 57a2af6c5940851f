package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/sync/health", h.health)
	})

	// sync API, bearer token required
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/sync/documents/{kind}", h.getDocument)
		r.Put("/api/sync/documents/{kind}", h.setDocument)

		r.Get("/api/sync/quotes", h.listQuotes)
		r.Post("/api/sync/quotes", h.upsertQuotes)

		r.Delete("/api/sync/account", h.deleteAccountData)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
