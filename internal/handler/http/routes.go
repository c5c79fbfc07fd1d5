package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", traceIDHeader, totpGrantHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/api/version", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.withAPIToken)

		r.Get("/vault/totp", h.getTOTPStatus)
		r.Post("/vault/totp", h.postTOTPAction)

		// record routes additionally need a TOTP grant while TOTP is enabled
		r.Group(func(r chi.Router) {
			r.Use(h.withTOTPGrant)

			r.Get("/vault", h.listSecrets)
			r.Post("/vault", h.createSecret)
			r.Put("/vault", h.updateSecret)
			r.Delete("/vault", h.deleteSecret)

			r.Get("/vault/projects", h.listProjects)
			r.Post("/vault/projects", h.createProject)
			r.Put("/vault/projects", h.updateProject)
			r.Delete("/vault/projects", h.deleteProject)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
