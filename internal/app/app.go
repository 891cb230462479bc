package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/config"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/lib/metrics"
	_ "github.com/lib/pq"
)

type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	DB      *sql.DB
	Metrics *metrics.Registry
}

// NewApp создаёт новый экземпляр App: подключение к БД и реестр метрик.
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD environment variable is not set")
	}
	// реализуем подключение к БД через DSN
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	app := &App{
		Config:  cfg,
		Logger:  log,
		DB:      db,
		Metrics: metrics.NewRegistry(),
	}

	return app, nil
}
