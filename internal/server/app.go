// Package server wires configuration, storage, domain services and the
// HTTP transport into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/orio/internal/filex"
	"github.com/dmitrijs2005/orio/internal/logging"
	"github.com/dmitrijs2005/orio/internal/server/config"
	"github.com/dmitrijs2005/orio/internal/server/httpserver"
	"github.com/dmitrijs2005/orio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/orio/internal/server/services"
	"github.com/dmitrijs2005/orio/internal/server/session"
	"github.com/dmitrijs2005/orio/internal/server/storage"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      storage.ImageStore
}

// NewApp opens the database handle and the image store. Nothing touches the
// network until Run.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(logOut, c.LogLevel, c.Production)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	images, err := newImageStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("image store init error: %w", err)
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: repomanager.NewPostgresRepositoryManager(),
		images:      images,
	}, nil
}

func newImageStore(ctx context.Context, c *config.Config) (storage.ImageStore, error) {
	switch c.StorageBackend {
	case config.StorageLocal:
		dir, err := filex.EnsureDir(c.UploadDir)
		if err != nil {
			return nil, err
		}
		return storage.NewLocalStore(dir), nil
	case config.StorageS3:
		return storage.NewS3Store(ctx, storage.S3Options{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// prepare checks the database, applies migrations and seeds the catalogs.
func (app *App) prepare(ctx context.Context, catalogs *services.CatalogService) error {
	if err := app.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	if app.config.MigrateOnStart {
		app.logger.Info(ctx, "Running migrations...")
		if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
			return fmt.Errorf("migrations error: %w", err)
		}
	}

	if err := catalogs.Bootstrap(ctx); err != nil {
		return fmt.Errorf("catalog bootstrap error: %w", err)
	}
	return nil
}

func (app *App) buildServer() (*httpserver.Server, *services.CatalogService, error) {
	staticDir, err := filex.EnsureDir(app.config.StaticImgDir)
	if err != nil {
		return nil, nil, err
	}

	catalogs := services.NewCatalogService(app.db, app.repomanager, app.logger)
	svc := httpserver.Services{
		Identity: services.NewIdentityService(app.db, app.repomanager, app.logger),
		Reports:  services.NewReportService(app.db, app.repomanager, app.images, app.logger),
		Search:   services.NewSearchService(app.db, app.repomanager),
		Catalogs: catalogs,
	}

	sessions := session.NewManager(app.config.SecretKey, app.config.SessionValidityDuration, app.config.Production)

	s := httpserver.NewServer(httpserver.Options{
		Address:      app.config.EndpointAddrHTTP,
		StaticImgDir: staticDir,
		Production:   app.config.Production,
	}, app.logger, sessions, svc, app.images, app.db.PingContext)

	return s, catalogs, nil
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	s, catalogs, err := app.buildServer()
	if err != nil {
		return err
	}

	if err := app.prepare(ctx, catalogs); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
