package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/calegray/commerce-backend/internal/data/db"
	internalhttp "github.com/calegray/commerce-backend/internal/http"
	"github.com/calegray/commerce-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Services Services
	Server   *internalhttp.Server
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("loading configuration")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	gdb := pg.DB()

	cartCache := wireCartCache(cfg, log)
	serviceset := wireServices(gdb, log, cartCache)
	handlerset := wireHandlers(log, serviceset)
	server := wireServer(log, cfg, handlerset)

	return &App{
		Log:      log,
		DB:       gdb,
		Cfg:      cfg,
		Services: serviceset,
		Server:   server,
	}, nil
}

func (a *App) Run() error {
	addr := ":" + a.Cfg.Port
	a.Log.Info("http server starting", "addr", addr)
	return a.Server.Run(addr)
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.Server.Shutdown(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
