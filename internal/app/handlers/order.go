package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/service"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/storage"
	"github.com/go-chi/chi/v5"
)

// OrderRequest — тело POST /order и PUT /order/{id}.
type OrderRequest struct {
	UserID int64  `json:"user_id" validate:"required"`
	CartID int64  `json:"cart_id" validate:"required"`
	Status string `json:"status"`
	Date   string `json:"date"` // "YYYY-MM-DD", опционально
}

// ListOrdersHandler обрабатывает GET /order?page&limit&status&sort.
// Публичный список всего каталога заказов, без привязки к пользователю.
func ListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		q := r.URL.Query()
		// Нечисловые page/limit считаются отсутствующими и отключают пагинацию
		page, _ := strconv.Atoi(q.Get("page"))
		limit, _ := strconv.Atoi(q.Get("limit"))

		params := service.OrderListParams{
			Status: q.Get("status"),
			Sort:   q.Get("sort"),
			Page:   page,
			Limit:  limit,
		}

		orders, err := orderService.ListOrders(r.Context(), params)
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		if orders == nil {
			orders = []*models.Order{}
		}
		respondJSON(logger, w, http.StatusOK, orders)
	}
}

// GetOrderHandler обрабатывает GET /order/{id}.
func GetOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(logger, w, http.StatusBadRequest, "Id inválido")
			return
		}

		order, err := orderService.GetOrderByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				respondError(logger, w, http.StatusNotFound, "Orden no encontrada")
				return
			}
			logger.Error("failed to get order", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		respondJSON(logger, w, http.StatusOK, order)
	}
}

// CreateOrderHandler обрабатывает POST /order.
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var req OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "Solicitud inválida")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "user_id y cart_id requeridos")
			return
		}

		order := &models.Order{
			UserID: req.UserID,
			CartID: req.CartID,
			Status: req.Status,
		}
		if req.Date != "" {
			date, err := parseOrderDate(req.Date)
			if err != nil {
				respondError(logger, w, http.StatusBadRequest, "Fecha inválida")
				return
			}
			order.Date = &date
		}

		created, err := orderService.CreateOrder(r.Context(), order)
		if err != nil {
			logger.Error("failed to create order", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		respondJSON(logger, w, http.StatusCreated, created)
	}
}

// UpdateOrderHandler обрабатывает PATCH /order/{id} (частичное обновление):
// тело прокидывается в хранилище как набор колонок, валидации полей здесь нет —
// неизвестная колонка завершится ошибкой персистентного слоя.
func UpdateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(logger, w, http.StatusBadRequest, "Id inválido")
			return
		}

		var fields map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "Solicitud inválida")
			return
		}

		updated, err := orderService.UpdateOrder(r.Context(), id, fields)
		if err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				respondError(logger, w, http.StatusNotFound, "Orden no encontrada")
				return
			}
			logger.Error("failed to update order", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		respondJSON(logger, w, http.StatusOK, updated)
	}
}

// ReplaceOrderHandler обрабатывает PUT /order/{id} (полное обновление).
func ReplaceOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ReplaceOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(logger, w, http.StatusBadRequest, "Id inválido")
			return
		}

		var req OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "Solicitud inválida")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondError(logger, w, http.StatusBadRequest, "user_id y cart_id requeridos")
			return
		}

		fields := map[string]interface{}{
			"user_id": req.UserID,
			"cart_id": req.CartID,
			"status":  req.Status,
		}
		if req.Date != "" {
			date, err := parseOrderDate(req.Date)
			if err != nil {
				respondError(logger, w, http.StatusBadRequest, "Fecha inválida")
				return
			}
			fields["date"] = date
		}

		updated, err := orderService.UpdateOrder(r.Context(), id, fields)
		if err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				respondError(logger, w, http.StatusNotFound, "Orden no encontrada")
				return
			}
			logger.Error("failed to replace order", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		respondJSON(logger, w, http.StatusOK, updated)
	}
}

// DeleteOrderHandler обрабатывает DELETE /order/{id}.
func DeleteOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(logger, w, http.StatusBadRequest, "Id inválido")
			return
		}

		if err := orderService.DeleteOrder(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				respondError(logger, w, http.StatusNotFound, "Orden no encontrada")
				return
			}
			logger.Error("failed to delete order", slog.Any("error", err))
			respondError(logger, w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseOrderDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
