package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
)

var ErrCartNotFound = errors.New("cart not found")

// CartStorage описывает методы для работы с корзинами и их позициями.
type CartStorage interface {
	GetCartByID(ctx context.Context, id int64) (*models.Cart, error)
	CreateCart(ctx context.Context, userID int64) (*models.Cart, error)
	// GetItemsByCartID возвращает сырые позиции корзины как они хранятся;
	// для корзины без позиций возвращается пустой срез.
	GetItemsByCartID(ctx context.Context, cartID int64) ([]*models.CartItem, error)
	AddItem(ctx context.Context, cartID int64, payload []byte) (*models.CartItem, error)
}

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) CartStorage {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetCartByID(ctx context.Context, id int64) (*models.Cart, error) {
	cart := &models.Cart{}
	row := r.db.QueryRowContext(ctx, "SELECT id, user_id, created_at FROM carts WHERE id = $1", id)
	if err := row.Scan(&cart.ID, &cart.UserID, &cart.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) CreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	cart := &models.Cart{UserID: userID}
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO carts (user_id) VALUES ($1) RETURNING id, created_at",
		userID,
	).Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

func (r *cartRepository) GetItemsByCartID(ctx context.Context, cartID int64) ([]*models.CartItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, cart_id, payload FROM cart_items WHERE cart_id = $1 ORDER BY id",
		cartID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.CartItem
	for rows.Next() {
		item := &models.CartItem{}
		if err := rows.Scan(&item.ID, &item.CartID, &item.Payload); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) AddItem(ctx context.Context, cartID int64, payload []byte) (*models.CartItem, error) {
	item := &models.CartItem{CartID: cartID, Payload: payload}
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO cart_items (cart_id, payload) VALUES ($1, $2) RETURNING id",
		cartID, payload,
	).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return item, nil
}
