package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry — явный реестр prometheus с http-метриками приложения.
// Передаётся зависимостью, без глобального состояния, чтобы сервисы
// можно было тестировать без живого бэкенда метрик.
type Registry struct {
	reg *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "eco_books_http_requests_total",
		Help: "Количество HTTP-запросов по методу, маршруту и статусу.",
	}, []string{"method", "route", "status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eco_books_http_request_duration_seconds",
		Help:    "Латентность HTTP-запросов.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	r.MustRegister(requestsTotal, requestDuration)
	return &Registry{
		reg:             r,
		RequestsTotal:   requestsTotal,
		RequestDuration: requestDuration,
	}
}

// Handler возвращает http.Handler для эндпоинта /metrics.
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Middleware регистрирует латентность и счётчик запросов.
// Маршрут берётся как chi-паттерн после обработки, чтобы группировать
// эндпоинты, а не множить метки по конкретным id.
func (m *Registry) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unknown"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
			m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
