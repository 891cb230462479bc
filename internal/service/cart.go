package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/storage"
)

// CartItemResolver приводит сырые позиции корзины к канонической форме.
// Резолвер без состояния, его можно безопасно звать параллельно
// для разных корзин.
type CartItemResolver interface {
	ResolveItems(ctx context.Context, cartID int64) ([]models.NormalizedItem, error)
}

type cartItemResolver struct {
	log      *slog.Logger
	cartRepo storage.CartStorage
}

func NewCartItemResolver(log *slog.Logger, cartRepo storage.CartStorage) CartItemResolver {
	return &cartItemResolver{log: log, cartRepo: cartRepo}
}

// rawCartItem — все исторические варианты ключей payload. Отсутствующие
// поля остаются nil и разрешаются по фиксированному приоритету.
type rawCartItem struct {
	Title *string `json:"title"`
	Name  *string `json:"name"`
	Book  *struct {
		Name *string `json:"name"`
	} `json:"book"`
	UnitPrice     *float64 `json:"unit_price"`
	Price         *float64 `json:"price"`
	PurchasePrice *float64 `json:"purchase_price"`
	Quantity      *int     `json:"quantity"`
	Qty           *int     `json:"qty"`
}

// NormalizeItem согласует один payload по таблицам приоритетов:
// титул: title > book.name > name; цена: unit_price > price > purchase_price > 0;
// количество: quantity > qty > 1. Отсутствие поля — не ошибка.
func NormalizeItem(payload json.RawMessage) (models.NormalizedItem, error) {
	var raw rawCartItem
	if err := json.Unmarshal(payload, &raw); err != nil {
		return models.NormalizedItem{}, fmt.Errorf("failed to decode cart item payload: %w", err)
	}

	var bookName *string
	if raw.Book != nil {
		bookName = raw.Book.Name
	}

	return models.NormalizedItem{
		Title:     firstString(raw.Title, bookName, raw.Name),
		UnitPrice: firstFloat(raw.UnitPrice, raw.Price, raw.PurchasePrice),
		Quantity:  firstInt(1, raw.Quantity, raw.Qty),
	}, nil
}

func firstString(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return ""
}

func firstFloat(candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return 0
}

func firstInt(fallback int, candidates ...*int) int {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}

// ResolveItems возвращает нормализованные позиции корзины. Корзина без
// позиций — пустой срез, не ошибка.
func (r *cartItemResolver) ResolveItems(ctx context.Context, cartID int64) ([]models.NormalizedItem, error) {
	const op = "service.CartItemResolver.ResolveItems"

	rawItems, err := r.cartRepo.GetItemsByCartID(ctx, cartID)
	if err != nil {
		r.log.Error("failed to get cart items", slog.String("op", op),
			slog.Int64("cartID", cartID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]models.NormalizedItem, 0, len(rawItems))
	for _, rawItem := range rawItems {
		item, err := NormalizeItem(rawItem.Payload)
		if err != nil {
			return nil, fmt.Errorf("%s: item %d: %w", op, rawItem.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}
