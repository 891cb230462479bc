package handlers

import (
	"log/slog"
	"net/http"
)

// HealthHandler обрабатывает GET /health.
func HealthHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(log, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
