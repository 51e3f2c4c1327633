package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskbook/taskbook-api/internal/api"
	"github.com/taskbook/taskbook-api/internal/config"
	"github.com/taskbook/taskbook-api/internal/platform/logger"
	"github.com/taskbook/taskbook-api/internal/platform/sqlite"
	"github.com/taskbook/taskbook-api/internal/service"
)

// application holds the initialized dependencies of the running server.
// The store is opened once at startup and passed by reference; nothing
// looks it up from global state.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	taskService *service.TaskService
	taskHandler *api.TaskHandler
}

// initializeApp loads configuration and sets up application components:
// logging, the database (created and migrated on first start), the
// service layer, and the HTTP handlers.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_path", cfg.Database.Path)

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlite.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	taskStore := sqlite.NewTaskStore(db, log)
	taskService := service.NewTaskService(db, taskStore, log)

	return &application{
		config:      cfg,
		logger:      log,
		db:          db,
		taskService: taskService,
		taskHandler: api.NewTaskHandler(taskService),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
