package service_test

import (
	"context"
	"testing"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/service"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestBuildOrderQuery_Defaults(t *testing.T) {
	// Без параметров: сортировка по дате убыванием, без пагинации и фильтра
	q := service.BuildOrderQuery(service.OrderListParams{})

	assert.Equal(t, "date", q.SortField)
	assert.True(t, q.Desc)
	assert.Equal(t, "", q.Status)
	assert.Equal(t, 0, q.Limit)
	assert.Equal(t, 0, q.Offset)
}

func TestBuildOrderQuery_SortPrefix(t *testing.T) {
	cases := []struct {
		name  string
		sort  string
		field string
		desc  bool
	}{
		{"descending with prefix", "-date", "date", true},
		{"ascending without prefix", "date", "date", false},
		{"other field descending", "-status", "status", true},
		{"other field ascending", "created_at", "created_at", false},
		{"bare dash falls back to date", "-", "date", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := service.BuildOrderQuery(service.OrderListParams{Sort: tc.sort})
			assert.Equal(t, tc.field, q.SortField)
			assert.Equal(t, tc.desc, q.Desc)
		})
	}
}

func TestBuildOrderQuery_Pagination(t *testing.T) {
	// Пагинация применяется только когда заданы оба параметра
	cases := []struct {
		name   string
		page   int
		limit  int
		limOut int
		offOut int
	}{
		{"both set", 2, 10, 10, 10},
		{"first page", 1, 25, 25, 0},
		{"only page disables pagination", 3, 0, 0, 0},
		{"only limit disables pagination", 0, 10, 0, 0},
		{"neither", 0, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := service.BuildOrderQuery(service.OrderListParams{Page: tc.page, Limit: tc.limit})
			assert.Equal(t, tc.limOut, q.Limit)
			assert.Equal(t, tc.offOut, q.Offset)
		})
	}
}

func TestBuildOrderQuery_StatusFilter(t *testing.T) {
	q := service.BuildOrderQuery(service.OrderListParams{Status: "completed"})
	assert.Equal(t, "completed", q.Status)
}

// recordingOrderStorage фиксирует, с каким планом пришли в хранилище.
type recordingOrderStorage struct {
	fakeOrderStorage
	lastQuery   storage.OrderQuery
	lastCreated *models.Order
}

func (r *recordingOrderStorage) ListOrders(ctx context.Context, q storage.OrderQuery) ([]*models.Order, error) {
	r.lastQuery = q
	return []*models.Order{}, nil
}

func (r *recordingOrderStorage) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	r.lastCreated = order
	order.ID = 1
	return order, nil
}

func TestListOrders_PassesPlanToStorage(t *testing.T) {
	repo := &recordingOrderStorage{}
	svc := service.NewOrderService(discardLogger(), repo)

	_, err := svc.ListOrders(context.Background(), service.OrderListParams{
		Status: "completed", Sort: "-date", Page: 2, Limit: 10,
	})
	assert.NoError(t, err)
	assert.Equal(t, storage.OrderQuery{
		Status: "completed", SortField: "date", Desc: true, Limit: 10, Offset: 10,
	}, repo.lastQuery)
}

func TestCreateOrder_Defaults(t *testing.T) {
	// Статус по умолчанию pending, дата проставляется
	repo := &recordingOrderStorage{}
	svc := service.NewOrderService(discardLogger(), repo)

	created, err := svc.CreateOrder(context.Background(), &models.Order{UserID: 7, CartID: 3})
	assert.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	assert.NotNil(t, created.Date)
	assert.Equal(t, int64(1), created.ID)
}

func TestCreateOrder_KeepsExplicitStatus(t *testing.T) {
	repo := &recordingOrderStorage{}
	svc := service.NewOrderService(discardLogger(), repo)

	created, err := svc.CreateOrder(context.Background(), &models.Order{UserID: 7, CartID: 3, Status: "completed"})
	assert.NoError(t, err)
	assert.Equal(t, "completed", created.Status)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	// Ноль затронутых строк транслируется в ErrOrderNotFound
	repo := &recordingOrderStorage{}
	svc := service.NewOrderService(discardLogger(), repo)

	_, err := svc.UpdateOrder(context.Background(), 404, map[string]interface{}{"status": "completed"})
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
}
