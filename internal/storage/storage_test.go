package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/storage"
	"github.com/stretchr/testify/assert"
)

const orderCols = "id, user_id, cart_id, status, date, created_at"

func orderRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{"id", "user_id", "cart_id", "status", "date", "created_at"})
}

func TestListOrders_FilterSortPagination(t *testing.T) {
	// Создаем sqlmock для эмуляции базы данных.
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()

	now := time.Now()
	rows := orderRows(t).
		AddRow(11, 7, 1, "completed", now, now).
		AddRow(12, 8, 2, "completed", now, now)

	// Статус — первый аргумент, limit и offset следом, поле сортировки в кавычках
	query := regexp.QuoteMeta(`SELECT ` + orderCols + ` FROM orders WHERE status = $1 ORDER BY "date" DESC LIMIT $2 OFFSET $3`)
	mock.ExpectQuery(query).WithArgs("completed", 10, 10).WillReturnRows(rows)

	orders, err := repo.ListOrders(ctx, storage.OrderQuery{
		Status: "completed", SortField: "date", Desc: true, Limit: 10, Offset: 10,
	})
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, int64(11), orders[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders_NoPagination(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	// Без limit/offset и без фильтра по статусу
	query := regexp.QuoteMeta(`SELECT ` + orderCols + ` FROM orders ORDER BY "date" ASC`)
	mock.ExpectQuery(query).WillReturnRows(orderRows(t))

	orders, err := repo.ListOrders(context.Background(), storage.OrderQuery{SortField: "date"})
	assert.NoError(t, err)
	assert.Empty(t, orders)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders_UnknownSortColumn(t *testing.T) {
	// Неизвестная колонка сортировки отдаётся как ошибка персистентного слоя
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	query := regexp.QuoteMeta(`SELECT ` + orderCols + ` FROM orders ORDER BY "nope" DESC`)
	mock.ExpectQuery(query).WillReturnError(errors.New(`pq: column "nope" does not exist`))

	orders, err := repo.ListOrders(context.Background(), storage.OrderQuery{SortField: "nope", Desc: true})
	assert.Error(t, err)
	assert.Nil(t, orders)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	query := regexp.QuoteMeta(`SELECT ` + orderCols + ` FROM orders WHERE id = $1`)
	mock.ExpectQuery(query).WithArgs(int64(404)).WillReturnRows(orderRows(t))

	order, err := repo.GetOrderByID(context.Background(), 404)
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
	assert.Nil(t, order)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	now := time.Now()

	query := regexp.QuoteMeta(`INSERT INTO orders (user_id, cart_id, status, date) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`)
	mock.ExpectQuery(query).
		WithArgs(int64(7), int64(3), "pending", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(101, now))

	order := &models.Order{UserID: 7, CartID: 3, Status: "pending"}
	created, err := repo.CreateOrder(context.Background(), order)
	assert.NoError(t, err)
	assert.Equal(t, int64(101), created.ID)
	assert.Equal(t, now, created.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_Affected(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	query := regexp.QuoteMeta(`UPDATE orders SET "status" = $1 WHERE id = $2`)
	mock.ExpectExec(query).WithArgs("completed", int64(101)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.UpdateOrder(context.Background(), 101, map[string]interface{}{"status": "completed"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_NoFields(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	affected, err := repo.UpdateOrder(context.Background(), 101, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	query := regexp.QuoteMeta(`DELETE FROM orders WHERE id = $1`)
	mock.ExpectExec(query).WithArgs(int64(404)).WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DeleteOrder(context.Background(), 404)
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrdersByUserID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	now := time.Now()

	rows := orderRows(t).
		AddRow(102, 7, 2, "completed", now, now).
		AddRow(101, 7, 1, "completed", now.Add(-24*time.Hour), now.Add(-24*time.Hour))

	mock.ExpectQuery(`SELECT .+ FROM orders\s+WHERE user_id = \$1\s+ORDER BY COALESCE\(date, created_at\) DESC`).
		WithArgs(int64(7)).WillReturnRows(rows)

	orders, err := repo.GetOrdersByUserID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, int64(102), orders[0].ID)
	assert.Equal(t, int64(101), orders[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrdersByUserID_NullDate(t *testing.T) {
	// Заказ без даты получает nil Date, а PlacedAt падает на created_at
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	created := time.Now()

	rows := orderRows(t).AddRow(55, 5, 9, "pending", nil, created)
	mock.ExpectQuery(`SELECT .+ FROM orders\s+WHERE user_id = \$1`).
		WithArgs(int64(5)).WillReturnRows(rows)

	orders, err := repo.GetOrdersByUserID(context.Background(), 5)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Nil(t, orders[0].Date)
	assert.Equal(t, created, orders[0].PlacedAt())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetItemsByCartID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)

	payload := []byte(`{"title":"Dune","unit_price":25,"quantity":2}`)
	rows := sqlmock.NewRows([]string{"id", "cart_id", "payload"}).AddRow(1, 7, payload)

	query := regexp.QuoteMeta(`SELECT id, cart_id, payload FROM cart_items WHERE cart_id = $1 ORDER BY id`)
	mock.ExpectQuery(query).WithArgs(int64(7)).WillReturnRows(rows)

	items, err := repo.GetItemsByCartID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, json.RawMessage(payload), items[0].Payload)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetItemsByCartID_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)

	query := regexp.QuoteMeta(`SELECT id, cart_id, payload FROM cart_items WHERE cart_id = $1 ORDER BY id`)
	mock.ExpectQuery(query).WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "payload"}))

	items, err := repo.GetItemsByCartID(context.Background(), 8)
	assert.NoError(t, err)
	assert.Empty(t, items)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "pass_hash", "role"}).
		AddRow(1, "test@example.com", []byte("hashed-password"), "USER")

	query := regexp.QuoteMeta(`SELECT id, email, pass_hash, role FROM users WHERE email = $1`)
	mock.ExpectQuery(query).WithArgs("test@example.com").WillReturnRows(rows)

	user, err := repo.GetUserByEmail(context.Background(), "test@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "USER", user.Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)

	query := regexp.QuoteMeta(`SELECT id, email, pass_hash, role FROM users WHERE email = $1`)
	mock.ExpectQuery(query).WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "pass_hash", "role"}))

	user, err := repo.GetUserByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookByID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewBookRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "stock"}).
		AddRow(3, "Dune", 25.0, 10)

	query := regexp.QuoteMeta(`SELECT id, name, price, stock FROM books WHERE id = $1`)
	mock.ExpectQuery(query).WithArgs(int64(3)).WillReturnRows(rows)

	book, err := repo.GetBookByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, "Dune", book.Name)
	assert.Equal(t, 25.0, book.Price)

	assert.NoError(t, mock.ExpectationsWereMet())
}
