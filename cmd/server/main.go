package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/app"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/app/handlers"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/config"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/lib/logger"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/lib/logger/handlers/urllog"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/security"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/security/authmiddleware"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/service"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	// витрина ходит с cookie, поэтому credentials обязательны
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORS.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	if cfg.Metrics.Enabled {
		router.Use(application.Metrics.Middleware())
	}

	// реализация слоев по работе с БД по каждому направлению
	userRepo := storage.NewUserRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)
	cartRepo := storage.NewCartRepository(application.DB)
	bookRepo := storage.NewBookRepository(application.DB)

	issuer := security.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.TokenTTL)*time.Minute)
	authService := service.NewAuthService(application.Logger, userRepo, issuer)
	orderService := service.NewOrderService(application.Logger, orderRepo)
	resolver := service.NewCartItemResolver(application.Logger, cartRepo)
	historyService := service.NewHistoryService(application.Logger, orderRepo, resolver)

	router.NotFound(handlers.NotFoundHandler(application.Logger))
	router.Get("/health", handlers.HealthHandler(application.Logger))

	// аутентификация
	secureCookie := cfg.Env == logger.EnvProd
	router.Post("/auth/login", handlers.LoginHandler(application.Logger, authService, int(issuer.TTL().Seconds()), secureCookie))
	router.Post("/auth/logout", handlers.LogoutHandler(application.Logger))

	// каталог
	router.Get("/book", handlers.ListBooksHandler(application.Logger, bookRepo))
	router.Get("/book/{id}", handlers.GetBookHandler(application.Logger, bookRepo))

	// заказы
	router.Route("/order", func(r chi.Router) {
		r.Get("/", handlers.ListOrdersHandler(application.Logger, orderService))
		r.Post("/", handlers.CreateOrderHandler(application.Logger, orderService))

		// история текущего пользователя — единственный маршрут за auth middleware
		r.Group(func(pr chi.Router) {
			pr.Use(authmiddleware.New(issuer))
			pr.Get("/my", handlers.MyOrdersHandler(application.Logger, historyService))
		})

		// маршрут поздней ревизии, без аутентификации
		r.Get("/user/{userID}", handlers.UserOrdersHandler(application.Logger, historyService))

		r.Get("/{id}", handlers.GetOrderHandler(application.Logger, orderService))
		r.Patch("/{id}", handlers.UpdateOrderHandler(application.Logger, orderService))
		r.Put("/{id}", handlers.ReplaceOrderHandler(application.Logger, orderService))
		r.Delete("/{id}", handlers.DeleteOrderHandler(application.Logger, orderService))
	})

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, application.Metrics.Handler())
	}

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
