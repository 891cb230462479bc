package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/security/authmiddleware"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/service"
	"github.com/go-chi/chi/v5"
)

// MyOrdersHandler обрабатывает GET /order/my: плоская история покупок
// текущего пользователя. Идентификатор берётся только из проверенного
// токена — клиент не может запросить чужую историю.
func MyOrdersHandler(log *slog.Logger, historyService service.HistoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MyOrdersHandler"
		logger := log.With(slog.String("op", op))

		ident, ok := authmiddleware.FromContext(r.Context())
		if !ok {
			// Сюда попадаем только если маршрут смонтирован мимо middleware
			logger.Error("identity not found in context")
			respondError(logger, w, http.StatusUnauthorized, "No autorizado")
			return
		}

		records, err := historyService.PurchaseHistory(r.Context(), ident.UserID)
		if err != nil {
			logger.Error("failed to get purchase history", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		respondJSON(logger, w, http.StatusOK, records)
	}
}

// UserOrdersHandler обрабатывает GET /order/user/{userID} — тот же плоский
// список, но для произвольного пользователя и без аутентификации.
// Маршрут пришёл из поздней ревизии роутинга; остаётся под вопросом,
// внутренний это эндпоинт или регрессия авторизации.
func UserOrdersHandler(log *slog.Logger, historyService service.HistoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UserOrdersHandler"
		logger := log.With(slog.String("op", op))

		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			respondError(logger, w, http.StatusBadRequest, "Id inválido")
			return
		}

		records, err := historyService.PurchaseHistory(r.Context(), userID)
		if err != nil {
			logger.Error("failed to get purchase history", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		respondJSON(logger, w, http.StatusOK, records)
	}
}
