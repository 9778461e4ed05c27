package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dailylog/internal/config"
	"github.com/mamadbah2/dailylog/internal/repository"
	"github.com/mamadbah2/dailylog/internal/repository/mongodb"
	"github.com/mamadbah2/dailylog/internal/repository/sheets"
	"github.com/mamadbah2/dailylog/internal/repository/sqlite"
	"github.com/mamadbah2/dailylog/internal/scheduler"
	"github.com/mamadbah2/dailylog/internal/server/handlers"
	"github.com/mamadbah2/dailylog/internal/server/router"
	exportsvc "github.com/mamadbah2/dailylog/internal/service/export"
	recordsvc "github.com/mamadbah2/dailylog/internal/service/records"
	reportingsvc "github.com/mamadbah2/dailylog/internal/service/reporting"
	weathersvc "github.com/mamadbah2/dailylog/internal/service/weather"
	"github.com/mamadbah2/dailylog/pkg/clients/openmeteo"
	"github.com/mamadbah2/dailylog/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := openStore(context.Background(), cfg)
	if err != nil {
		baseLogger.Fatal("failed to init record store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close record store", zap.Error(err))
		}
	}()

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
	} else {
		baseLogger.Warn("google sheets credentials missing, sheets export disabled")
	}

	recordSvc := recordsvc.NewService(store, logger.Named(baseLogger, "svc.records"))
	reportingSvc := reportingsvc.NewService(store, logger.Named(baseLogger, "svc.reporting"))
	exportSvc := exportsvc.NewService(store, sheetsRepo, cfg.Sheets.Range, logger.Named(baseLogger, "svc.export"))

	weatherClient := openmeteo.NewClient(cfg.Weather)
	weatherSvc := weathersvc.NewService(weatherClient, logger.Named(baseLogger, "svc.weather"))

	engine := router.New(router.Handlers{
		Records: handlers.NewRecordsHandler(recordSvc, logger.Named(baseLogger, "handlers.records")),
		Weather: handlers.NewWeatherHandler(weatherSvc, logger.Named(baseLogger, "handlers.weather")),
		Reports: handlers.NewReportHandler(reportingSvc, logger.Named(baseLogger, "handlers.reports")),
		Export:  handlers.NewExportHandler(exportSvc, logger.Named(baseLogger, "handlers.export")),
	}, cfg.Auth, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(cfg.Export.CronSchedule, exportSvc, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config) (repository.RecordRepository, error) {
	switch cfg.Storage.Driver {
	case config.StorageMongoDB:
		return mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	default:
		return sqlite.New(cfg.SQLite.Path)
	}
}
