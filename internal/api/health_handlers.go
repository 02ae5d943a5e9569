package api

import (
	"net/http"
	"sort"

	"github.com/vytor/statsboard/internal/logger"
)

// handleHealth returns a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady runs every readiness check. Returns 503 naming the first
// failing dependency.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	names := make([]string, 0, len(s.ReadyChecks))
	for name := range s.ReadyChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.ReadyChecks[name](ctx); err != nil {
			log.Warn("readiness check failed - %s: %v", name, err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(name + " unavailable"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
