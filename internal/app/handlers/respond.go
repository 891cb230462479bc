package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Конвенция ответов: успех — сущность или массив как есть,
// ошибка — {"error": "..."}; для неизвестного маршрута — {"message", "path"}.

func respondJSON(log *slog.Logger, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(log *slog.Logger, w http.ResponseWriter, status int, msg string) {
	respondJSON(log, w, status, map[string]string{"error": msg})
}

// NotFoundHandler отвечает на незнакомые маршруты в формате витрины.
func NotFoundHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(log, w, http.StatusNotFound, map[string]string{
			"message": "Not Found",
			"path":    r.URL.Path,
		})
	}
}
