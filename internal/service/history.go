package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/storage"
	"golang.org/x/sync/errgroup"
)

// PurchaseRecord — одна плоская запись истории покупок, по записи на позицию.
// Ключи испанские: так их ждёт страница /history витрины.
type PurchaseRecord struct {
	ID       int64   `json:"id"`
	Articulo string  `json:"articulo"`
	Precio   float64 `json:"precio"`
	Cantidad int     `json:"cantidad"`
	Fecha    string  `json:"fecha"` // "YYYY-MM-DD"
}

// HistoryService восстанавливает историю покупок пользователя:
// заказы, присоединённые к позициям их корзин.
type HistoryService interface {
	AggregateByUser(ctx context.Context, userID int64) ([]models.AggregatedOrder, error)
	PurchaseHistory(ctx context.Context, userID int64) ([]PurchaseRecord, error)
}

type historyService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
	resolver  CartItemResolver
}

func NewHistoryService(log *slog.Logger, orderRepo storage.OrderStorage, resolver CartItemResolver) HistoryService {
	return &historyService{log: log, orderRepo: orderRepo, resolver: resolver}
}

// AggregateByUser собирает заказы пользователя с позициями их корзин.
// Заказы берутся по дате убыванием; позиции каждого заказа резолвятся
// параллельно, результат отдаётся только когда готовы все. Первая же
// неудача проваливает весь агрегат, частичных результатов нет; в ошибку
// вшивается id проблемного заказа. Пользователь без заказов получает
// пустой срез, не ошибку.
func (s *historyService) AggregateByUser(ctx context.Context, userID int64) ([]models.AggregatedOrder, error) {
	const op = "service.HistoryService.AggregateByUser"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))
	logger.Info("aggregating user orders")

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to get orders", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get orders: %w", op, err)
	}

	// Индекс в results повторяет порядок выборки (по дате убыванием)
	results := make([]models.AggregatedOrder, len(orders))
	g, gctx := errgroup.WithContext(ctx)
	for i, order := range orders {
		i, order := i, order
		g.Go(func() error {
			items, err := s.resolver.ResolveItems(gctx, order.CartID)
			if err != nil {
				return fmt.Errorf("order %d: cart %d: %w", order.ID, order.CartID, err)
			}
			results[i] = models.AggregatedOrder{
				ID:    order.ID,
				Date:  order.PlacedAt(),
				Items: items,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("failed to resolve order items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("orders aggregated", slog.Int("count", len(results)))
	return results, nil
}

// PurchaseHistory разворачивает агрегат в плоский список записей —
// по одной на позицию, с id и датой её заказа. Группировка обратно
// по заказам остаётся на стороне витрины.
func (s *historyService) PurchaseHistory(ctx context.Context, userID int64) ([]PurchaseRecord, error) {
	const op = "service.HistoryService.PurchaseHistory"

	aggregated, err := s.AggregateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := make([]PurchaseRecord, 0)
	for _, order := range aggregated {
		fecha := order.Date.Format("2006-01-02")
		for _, item := range order.Items {
			records = append(records, PurchaseRecord{
				ID:       order.ID,
				Articulo: item.Title,
				Precio:   item.UnitPrice,
				Cantidad: item.Quantity,
				Fecha:    fecha,
			})
		}
	}
	return records, nil
}
