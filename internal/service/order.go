package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/storage"
)

// DefaultSort — сортировка списка заказов по умолчанию: по дате, новые первыми.
const DefaultSort = "-date"

// OrderListParams — параметры запроса списка заказов как они пришли с витрины.
type OrderListParams struct {
	Status string
	Sort   string
	Page   int
	Limit  int
}

// OrderService — CRUD по заказам плюс список с фильтром/сортировкой/пагинацией.
type OrderService interface {
	ListOrders(ctx context.Context, params OrderListParams) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	UpdateOrder(ctx context.Context, id int64, fields map[string]interface{}) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
}

func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage) OrderService {
	return &orderService{log: log, orderRepo: orderRepo}
}

// BuildOrderQuery переводит параметры запроса в план для хранилища.
// Префикс "-" у sort означает убывание и отбрасывается при выборе поля;
// пустое поле после отбрасывания — это "date". Пагинация применяется только
// когда заданы и page, и limit: один параметр без второго отключает её
// полностью (возвращаются все строки) — это намеренная политика, не ошибка.
func BuildOrderQuery(params OrderListParams) storage.OrderQuery {
	sort := params.Sort
	if sort == "" {
		sort = DefaultSort
	}

	desc := strings.HasPrefix(sort, "-")
	field := strings.TrimPrefix(sort, "-")
	if field == "" {
		field = "date"
	}

	q := storage.OrderQuery{
		Status:    params.Status,
		SortField: field,
		Desc:      desc,
	}
	if params.Page > 0 && params.Limit > 0 {
		q.Limit = params.Limit
		q.Offset = (params.Page - 1) * params.Limit
	}
	return q
}

func (s *orderService) ListOrders(ctx context.Context, params OrderListParams) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"
	s.log.Info("listing orders", slog.String("op", op),
		slog.String("status", params.Status), slog.String("sort", params.Sort),
		slog.Int("page", params.Page), slog.Int("limit", params.Limit))

	orders, err := s.orderRepo.ListOrders(ctx, BuildOrderQuery(params))
	if err != nil {
		s.log.Error("failed to list orders", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	const op = "service.OrderService.GetOrderByID"
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// CreateOrder создаёт заказ; статус по умолчанию "pending", дата — сейчас.
func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	const op = "service.OrderService.CreateOrder"

	if order.Status == "" {
		order.Status = "pending"
	}
	if order.Date == nil {
		now := time.Now()
		order.Date = &now
	}

	created, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		s.log.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("order created", slog.String("op", op), slog.Int64("orderID", created.ID))
	return created, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, id int64, fields map[string]interface{}) (*models.Order, error) {
	const op = "service.OrderService.UpdateOrder"

	affected, err := s.orderRepo.UpdateOrder(ctx, id, fields)
	if err != nil {
		s.log.Error("failed to update order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrOrderNotFound)
	}
	return s.orderRepo.GetOrderByID(ctx, id)
}

func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	const op = "service.OrderService.DeleteOrder"
	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
