package server

import (
	"encoding/json"
	"net/http"
)

// HealthHandler reports liveness of this front-end only; the backend is not probed
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
			"app":    s.appName,
			"env":    s.env,
		})
	}
}
