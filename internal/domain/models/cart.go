package models

import (
	"encoding/json"
	"time"
)

// Cart — долговременный контейнер позиций. Как только на корзину ссылается
// заказ, она становится записью о том, что именно было куплено.
type Cart struct {
	ID        int64     `json:"cart_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CartItem — сырая позиция корзины как она хранится. Исторические продюсеры
// писали payload с разными наборами ключей (title против book.name,
// unit_price против price против purchase_price, quantity против qty),
// поэтому payload хранится как есть и согласуется резолвером.
type CartItem struct {
	ID      int64           `json:"item_id"`
	CartID  int64           `json:"cart_id"`
	Payload json.RawMessage `json:"payload"`
}

// NormalizedItem — каноническая форма позиции после согласования алиасов.
// Каждое поле всегда заполнено: цена по умолчанию 0, количество 1,
// чтобы суммы оставались вычислимыми.
type NormalizedItem struct {
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}
