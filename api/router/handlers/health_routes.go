package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/version"
)

func (s *Server) RegisterHealthRoutes(r chi.Router) {
	r.Get("/health", s.healthCheckHandler)
}

// healthCheckHandler reports the UI as up and checks the backend.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{"ok": true, "version": version.AppVersion, "backend_url": s.Client.BaseURL()}
	start := time.Now()
	h, err := s.Client.Health(r.Context())
	resp["backend_latency_ms"] = time.Since(start).Milliseconds()
	if err != nil {
		resp["backend"] = "unreachable"
		resp["backend_error"] = backend.UserMessage(err)
	} else {
		resp["backend"] = h.Status
	}
	writeJSON(w, http.StatusOK, resp)
}
