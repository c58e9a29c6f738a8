// Package entrypoint wires the catalog together: database, cover store,
// persistence service, maintenance queue and sweep scheduler.
package entrypoint

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/covers"
	"bookshelf/internal/database"
	"bookshelf/internal/scheduler"
	"bookshelf/internal/tasks"
)

// App holds the wired components so embedders (and the demo seeder) can use
// the service directly.
type App struct {
	Config  *config.Config
	DB      *database.Database
	Covers  *covers.Store
	Catalog *catalog.Service

	taskClient     *tasks.Client
	taskCancel     context.CancelFunc
	sweepScheduler *scheduler.SweepScheduler
}

// New builds the application from configuration. The database file is
// created and migrated if absent.
func New(cfg *config.Config) (*App, error) {
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	store, err := covers.NewStore(cfg.Covers.Dir)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Covers: store,
	}

	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}
		taskClient, err := tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			db.Close()
			return nil, err
		}
		app.taskClient = taskClient
		app.Catalog = catalog.NewService(db, store, taskClient)
		taskClient.Register(
			tasks.NewSweepOrphansQueue(app.Catalog),
			tasks.NewReapCoversQueue(app.Catalog),
		)
	} else {
		app.Catalog = catalog.NewService(db, store, nil)
	}

	app.sweepScheduler = scheduler.NewSweepScheduler(app.Catalog, cfg.Sweep.Schedule)

	return app, nil
}

// Start runs the startup sweep and begins background maintenance.
func (a *App) Start(ctx context.Context) error {
	if a.Config.Sweep.OnStart {
		result, err := a.Catalog.SweepOrphans()
		if err != nil {
			return err
		}
		log.Printf("Startup sweep removed %d orphan rows (%d authors, %d publishers, %d genres)",
			result.Total(), result.Authors, result.Publishers, result.Genres)
	}

	if a.taskClient != nil {
		var taskCtx context.Context
		taskCtx, a.taskCancel = context.WithCancel(ctx)
		go a.taskClient.Start(taskCtx)
	}

	return a.sweepScheduler.Start(ctx)
}

// Shutdown stops background maintenance and closes the databases.
func (a *App) Shutdown(ctx context.Context) {
	a.sweepScheduler.Stop()

	if a.taskClient != nil {
		a.taskClient.Stop(ctx)
		if a.taskCancel != nil {
			a.taskCancel()
		}
		if err := a.taskClient.Close(); err != nil {
			log.Printf("Failed to close task database: %v", err)
		}
	}

	if err := a.DB.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}

// Run wires the application, starts maintenance and blocks until SIGINT or
// SIGTERM, then shuts down within the configured timeout.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	app, err := New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	log.Printf("Shutting down, waiting up to %v", timeout)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()
	app.Shutdown(shutdownCtx)

	log.Println("Exiting")
}
