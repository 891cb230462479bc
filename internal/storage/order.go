package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
	"github.com/lib/pq"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderQuery — план запроса списка заказов, собранный сервисным слоем.
// Limit <= 0 означает «без пагинации».
type OrderQuery struct {
	Status    string
	SortField string
	Desc      bool
	Limit     int
	Offset    int
}

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	ListOrders(ctx context.Context, q OrderQuery) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// UpdateOrder обновляет перечисленные колонки и возвращает число затронутых строк.
	UpdateOrder(ctx context.Context, id int64, fields map[string]interface{}) (int64, error)
	DeleteOrder(ctx context.Context, id int64) error
	// GetOrdersByUserID возвращает заказы пользователя, новые первыми.
	GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error)
}

// orderRepository — конкретная реализация OrderStorage.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

const orderColumns = "id, user_id, cart_id, status, date, created_at"

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	order := &models.Order{}
	var date sql.NullTime
	err := row.Scan(&order.ID, &order.UserID, &order.CartID, &order.Status, &date, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	if date.Valid {
		order.Date = &date.Time
	}
	return order, nil
}

// ListOrders выполняет план запроса. Поле сортировки не сверяется со списком
// колонок: оно экранируется через pq.QuoteIdentifier, так что неизвестная
// колонка даст ошибку Postgres, а не уязвимость.
func (r *orderRepository) ListOrders(ctx context.Context, q OrderQuery) ([]*models.Order, error) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString("SELECT " + orderColumns + " FROM orders")
	if q.Status != "" {
		args = append(args, q.Status)
		sb.WriteString(fmt.Sprintf(" WHERE status = $%d", len(args)))
	}

	direction := "ASC"
	if q.Desc {
		direction = "DESC"
	}
	sb.WriteString(" ORDER BY " + pq.QuoteIdentifier(q.SortField) + " " + direction)

	if q.Limit > 0 {
		args = append(args, q.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
		args = append(args, q.Offset)
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, cart_id, status, date) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		order.UserID, order.CartID, order.Status, order.Date,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// UpdateOrder собирает SET из переданных колонок. Имена колонок экранируются,
// неизвестная колонка завершится ошибкой Postgres.
func (r *orderRepository) UpdateOrder(ctx context.Context, id int64, fields map[string]interface{}) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}

	var sets []string
	var args []interface{}
	for col, val := range fields {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(col), len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	// Сортировка по дате заказа; для записей без даты берётся created_at
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE user_id = $1
		ORDER BY COALESCE(date, created_at) DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
