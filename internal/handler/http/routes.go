package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// routes without a session
	router.Get("/healthz", h.health)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// pages
	router.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5, "text/html", "text/csv"))
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		r.Use(h.withSession)

		limited := r.With(h.rateLimit())

		r.Get("/", h.index)
		r.Post("/", h.upload)

		r.Get("/auth", h.authPage)
		limited.Post("/auth", h.authSubmit)

		r.Get("/register", h.registerPage)
		limited.Post("/register", h.registerSubmit)

		r.Get("/restore", h.restorePage)
		limited.Post("/restore", h.restoreSubmit)

		r.Get("/research", h.researchPage)
		r.Post("/research", h.researchSubmit)

		r.Post("/logout", h.logout)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// rateLimit bounds form submissions per client IP. A zero budget disables it.
func (h *Handler) rateLimit() func(http.Handler) http.Handler {
	if h.rateLimitRequests <= 0 || h.rateLimitWindow <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.LimitByIP(h.rateLimitRequests, h.rateLimitWindow)
}
