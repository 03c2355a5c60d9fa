package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"orders/cmd"
	orderhttp "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/outboxrepo"
	"orders/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Orders API
// @version 1.0
// @description Order lifecycle and pricing service: order placement, pricing, numbering and status tracking.
// @host localhost:8080
// @BasePath /
func main() {
	configs, err := cmd.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.New(configs.Environment, configs.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	l.Info("Application starting",
		zap.String("environment", configs.Environment),
		zap.String("log_level", configs.LogLevel),
		zap.String("sequence_backend", configs.Sequence.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(configs)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, l)
	if err != nil {
		l.Fatal("Failed to build application", zap.Error(err))
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			l.Warn("Failed to release resources", zap.Error(closeErr))
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		l.Fatal("Failed to start jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, l)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(configs.Database.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{}, &outboxrepo.BuyerReferenceDTO{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gormDB, nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port int, l *zap.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(gommonlog.WARN)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(orderhttp.RequestLogger(l.With(zap.String("component", "http_access"))))

	app.CreateHTTPServer().Register(e)

	go func() {
		address := fmt.Sprintf("0.0.0.0:%d", port)
		l.Info("Starting server", zap.String("address", address))
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	l.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error("Server shutdown failed", zap.Error(err))
	}
}
