package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/app"
	"github.com/cmlabs-hris/washpay-backend/internal/config"
	appHTTP "github.com/cmlabs-hris/washpay-backend/internal/handler/http"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/cron"

	_ "time/tzdata"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to start", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	salaryHandler := appHTTP.NewSalaryHandler(application.SlipService, application.ExportService)
	settingsHandler := appHTTP.NewSettingsHandler(application.SettingsService)
	healthHandler := appHTTP.NewHealthHandler(map[string]appHTTP.Pinger{
		"database": appHTTP.PingFunc(application.Repos.Ping),
		"storage":  application.Storage,
	})

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			AllowedOrigins: cfg.App.AllowedOrigins,
			FilesDir:       application.Storage.BasePath(),
		},
		application.JWT,
		salaryHandler,
		settingsHandler,
		healthHandler,
	)

	scheduler := cron.NewScheduler()
	if cfg.Cron.Enabled {
		salaryJobs := cron.NewSalaryJobs(application.SlipService, application.Repos.Workers, cfg.Location())
		salaryJobs.RegisterJobs(scheduler, cfg.Cron.DraftInterval)
		scheduler.Start()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if cfg.Cron.Enabled {
		scheduler.Stop()
	}
}
