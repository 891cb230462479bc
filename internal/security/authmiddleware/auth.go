package authmiddleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/security"
)

type contextKey string

const identityKey contextKey = "identity"

// New создаёт middleware проверки токена. Токен берётся из заголовка
// Authorization ("Bearer <token>") или из httpOnly-cookie access_token —
// витрина ходит с cookie, API-клиенты с заголовком.
// Без валидного токена запрос не доходит до обработчика.
func New(issuer *security.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "No autorizado")
				return
			}

			ident, err := issuer.ParseToken(tokenStr)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Token inválido o expirado")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if c, err := r.Cookie(security.CookieName); err == nil {
		return c.Value
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}

// FromContext извлекает личность запроса из контекста.
func FromContext(ctx context.Context) (*security.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(*security.Identity)
	return ident, ok
}
