package main

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/mongodb"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	client *mongo.Client

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore
	userStore store.UserStore

	// Service interfaces
	taskService service.TaskService
	userService service.UserService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database client that must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, client *mongo.Client) *application {
	app := &application{
		config: cfg,
		logger: logger,
		client: client,
	}

	db := client.Database(cfg.Database.Name)

	// Initialize stores
	app.taskStore = mongodb.NewMongoTaskStore(db)
	app.userStore = mongodb.NewMongoUserStore(db)

	// Initialize services. The two services cross-reference each other's
	// stores: task writes maintain user pendingTasks, and user deletes
	// unassign tasks.
	app.taskService = service.NewTaskService(app.taskStore, app.userStore, logger)
	app.userService = service.NewUserService(app.userStore, app.taskStore, logger)

	logger.Info("Application initialized successfully")
	return app
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()
	return app.startHTTPServer(ctx, router)
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		if err := app.client.Disconnect(ctx); err != nil {
			app.logger.Error("Error disconnecting from database", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
