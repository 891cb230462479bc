package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/app/handlers"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/security"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/security/authmiddleware"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// историйный маршрут собирается как в cmd/server: за auth middleware
func historyRouter(issuer *security.TokenIssuer, svc service.HistoryService) http.Handler {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(authmiddleware.New(issuer))
		pr.Get("/order/my", handlers.MyOrdersHandler(testLogger(), svc))
	})
	r.Get("/order/user/{userID}", handlers.UserOrdersHandler(testLogger(), svc))
	return r
}

func TestMyOrders_NoCredential(t *testing.T) {
	issuer := security.NewTokenIssuer("testsecret", time.Hour)
	fakeSvc := &fakeHistoryService{}
	router := historyRouter(issuer, fakeSvc)

	// Ни cookie, ни bearer: 401 и ни одного обращения к агрегации
	req := httptest.NewRequest("GET", "/order/my", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"No autorizado"}`, rr.Body.String())
	assert.False(t, fakeSvc.called, "aggregation must not run without a credential")
}

func TestMyOrders_IdentityScoped(t *testing.T) {
	issuer := security.NewTokenIssuer("testsecret", time.Hour)
	fakeSvc := &fakeHistoryService{records: []service.PurchaseRecord{
		{ID: 101, Articulo: "Dune", Precio: 25, Cantidad: 2, Fecha: "2024-05-01"},
	}}
	router := historyRouter(issuer, fakeSvc)

	token, err := issuer.NewToken(&models.User{ID: 7, Email: "a@b.com", Role: "USER"})
	assert.NoError(t, err)

	// userID берётся из токена, что бы ни пришло в query
	req := httptest.NewRequest("GET", "/order/my?user_id=999", nil)
	req.AddCookie(&http.Cookie{Name: security.CookieName, Value: token})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(7), fakeSvc.lastUserID)
	assert.JSONEq(t, `[{"id":101,"articulo":"Dune","precio":25,"cantidad":2,"fecha":"2024-05-01"}]`, rr.Body.String())
}

func TestMyOrders_EmptyHistory(t *testing.T) {
	issuer := security.NewTokenIssuer("testsecret", time.Hour)
	fakeSvc := &fakeHistoryService{records: []service.PurchaseRecord{}}
	router := historyRouter(issuer, fakeSvc)

	token, err := issuer.NewToken(&models.User{ID: 7, Email: "a@b.com", Role: "USER"})
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/order/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestMyOrders_AggregationError(t *testing.T) {
	issuer := security.NewTokenIssuer("testsecret", time.Hour)
	fakeSvc := &fakeHistoryService{err: assert.AnError}
	router := historyRouter(issuer, fakeSvc)

	token, err := issuer.NewToken(&models.User{ID: 7, Email: "a@b.com", Role: "USER"})
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/order/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Error interno del servidor"}`, rr.Body.String())
}

func TestUserOrders_Public(t *testing.T) {
	// Маршрут поздней ревизии: без аутентификации, id из пути
	issuer := security.NewTokenIssuer("testsecret", time.Hour)
	fakeSvc := &fakeHistoryService{records: []service.PurchaseRecord{}}
	router := historyRouter(issuer, fakeSvc)

	req := httptest.NewRequest("GET", "/order/user/5", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(5), fakeSvc.lastUserID)
}

func TestUserOrders_BadID(t *testing.T) {
	issuer := security.NewTokenIssuer("testsecret", time.Hour)
	router := historyRouter(issuer, &fakeHistoryService{})

	req := httptest.NewRequest("GET", "/order/user/abc", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
