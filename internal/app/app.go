// Package app assembles the salary engine from configuration. The API server
// and washpayctl share it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/washpay-backend/internal/config"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/activity"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/worker"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/database"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/storage"
	"github.com/cmlabs-hris/washpay-backend/internal/repository/mongodb"
	"github.com/cmlabs-hris/washpay-backend/internal/repository/postgresql"
	salaryService "github.com/cmlabs-hris/washpay-backend/internal/service/salary"
	"github.com/go-chi/httplog/v3"
)

type Repositories struct {
	Settings salary.SettingsRepository
	Slips    salary.SlipRepository
	Workers  worker.WorkerRepository
	Activity activity.ActivityRepository
	// Ping checks the backing database.
	Ping  func(ctx context.Context) error
	Close func()
}

type App struct {
	Config          *config.Config
	Repos           Repositories
	Storage         *storage.LocalStorage
	JWT             jwt.Service
	SettingsService salary.SettingsService
	SlipService     salary.SlipService
	ExportService   salary.ExportService
}

// NewLogger builds the JSON slog logger with the ECS field names used by
// the request logger.
func NewLogger(cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "washpay"),
		slog.String("env", cfg.App.Env),
	)
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	repos, err := OpenRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		repos.Close()
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	defaults := salary.DefaultSettings()
	if cfg.Salary.DefaultsFile != "" {
		defaults, err = salary.LoadDefaultsFile(cfg.Salary.DefaultsFile)
		if err != nil {
			repos.Close()
			return nil, err
		}
		slog.Info("Loaded salary defaults", "file", cfg.Salary.DefaultsFile)
	}

	settingsService := salaryService.NewSettingsService(repos.Settings, defaults)
	slipService := salaryService.NewSlipService(
		settingsService,
		repos.Slips,
		repos.Workers,
		salaryService.NewAggregator(repos.Activity, cfg.Location()),
		salaryService.NewCalculator(),
		salaryService.NewPriorBalanceResolver(repos.Slips),
	)
	exportService := salaryService.NewExportService(slipService, fileStorage, cfg.Salary.Currency)

	return &App{
		Config:          cfg,
		Repos:           repos,
		Storage:         fileStorage,
		JWT:             jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration),
		SettingsService: settingsService,
		SlipService:     slipService,
		ExportService:   exportService,
	}, nil
}

func (a *App) Close() {
	a.Repos.Close()
}

// OpenRepositories connects the storage driver named by STORAGE_DRIVER.
func OpenRepositories(ctx context.Context, cfg *config.Config) (Repositories, error) {
	switch cfg.Database.Driver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgreSQLDBWithOptions(cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return Repositories{}, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return Repositories{}, err
		}
		return Repositories{
			Settings: postgresql.NewSettingsRepository(db),
			Slips:    postgresql.NewSlipRepository(db),
			Workers:  postgresql.NewWorkerRepository(db),
			Activity: postgresql.NewActivityRepository(db),
			Ping:     db.Ping,
			Close:    db.Close,
		}, nil

	case config.StorageDriverMongo:
		db, err := database.NewMongoDB(cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return Repositories{}, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = db.Close(context.Background())
			return Repositories{}, err
		}
		return Repositories{
			Settings: mongodb.NewSettingsRepository(db),
			Slips:    mongodb.NewSlipRepository(db),
			Workers:  mongodb.NewWorkerRepository(db),
			Activity: mongodb.NewActivityRepository(db),
			Ping:     db.Ping,
			Close: func() {
				if err := db.Close(context.Background()); err != nil {
					slog.Warn("Failed to disconnect from MongoDB", "error", err)
				}
			},
		}, nil
	}
	return Repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.Database.Driver)
}
