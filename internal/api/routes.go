package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.metricsMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.RequestTimeout > 0 {
			r.Use(timeoutMiddleware(s.RequestTimeout))
		}
		r.Get("/stat-kinds", s.handleStatKinds)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/players/{id}/stats", s.handlePlayerStats)
		r.Post("/events", s.handleRecordEvents)
	})
	return r
}
