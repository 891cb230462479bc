package models

import (
	"time"
)

// Order представляет оформленный заказ: кто купил, из какой корзины, когда.
// Сами товары живут в корзине; заказ их не дублирует.
type Order struct {
	ID        int64      `json:"order_id"`
	UserID    int64      `json:"user_id"`
	CartID    int64      `json:"cart_id"`
	Status    string     `json:"status"` // свободный текст, например "pending" / "completed"
	Date      *time.Time `json:"date"`
	CreatedAt time.Time  `json:"created_at"`
}

// PlacedAt возвращает дату заказа; для старых записей без даты
// используется время создания строки.
func (o *Order) PlacedAt() time.Time {
	if o.Date != nil {
		return *o.Date
	}
	return o.CreatedAt
}

// AggregatedOrder — представление заказа, собираемое сервисом истории:
// заголовок заказа плюс нормализованные товары его корзины.
// Строится заново на каждый запрос и никогда не сохраняется.
type AggregatedOrder struct {
	ID    int64            `json:"id"`
	Date  time.Time        `json:"date"`
	Items []NormalizedItem `json:"items"`
}

// Subtotal суммирует unit_price * quantity по товарам заказа.
func (a AggregatedOrder) Subtotal() float64 {
	var total float64
	for _, it := range a.Items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}
