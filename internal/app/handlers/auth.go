package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/security"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/service"
	"github.com/go-playground/validator/v10"
)

// LoginRequest представляет структуру запроса аутентификации с тегами валидации
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse — ответ с JWT-токеном; тот же токен уезжает в httpOnly-cookie
type LoginResponse struct {
	Token string `json:"token"`
}

var validate = validator.New()

// LoginHandler – обработчик POST /auth/login. Витрина получает токен в
// httpOnly-cookie access_token, API-клиенты — в теле ответа.
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface, cookieTTLSeconds int, secureCookie bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "Solicitud inválida")
			return
		}

		// Валидация структуры запроса с использованием validator
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "Email y contraseña requeridos")
			return
		}

		token, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			logger.Error("login failed", slog.Any("error", err))
			respondError(logger, w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     security.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   cookieTTLSeconds,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   secureCookie,
		})
		respondJSON(logger, w, http.StatusOK, LoginResponse{Token: token})
	}
}

// LogoutHandler сбрасывает cookie с токеном.
func LogoutHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     security.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		respondJSON(log, w, http.StatusOK, map[string]bool{"ok": true})
	}
}
