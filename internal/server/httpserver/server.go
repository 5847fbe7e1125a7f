// Package httpserver exposes the lost-and-found services over HTTP: JSON
// endpoints for forms and searches, a few placeholder pages, and the
// uploaded images.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/orio/internal/logging"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/services"
	"github.com/dmitrijs2005/orio/internal/server/session"
	"github.com/dmitrijs2005/orio/internal/server/storage"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

type IdentityService interface {
	Register(ctx context.Context, in services.RegisterInput) (string, error)
	Login(ctx context.Context, userID, password string) error
	BeginRecovery(ctx context.Context, userID string) (*services.RecoveryQuestions, error)
	CompleteRecovery(ctx context.Context, target, answer1, answer2, newPassword string) error
}

type ReportService interface {
	Submit(ctx context.Context, in services.SubmitInput) (*services.SubmitResult, error)
	ListMine(ctx context.Context, userID string) ([]models.UserReport, error)
}

type SearchService interface {
	Search(ctx context.Context, q services.SearchQuery) ([]models.ObjectSummary, error)
}

type CatalogService interface {
	Categories(ctx context.Context) ([]string, error)
	States(ctx context.Context) ([]string, error)
}

// Services bundles the domain services the handlers call.
type Services struct {
	Identity IdentityService
	Reports  ReportService
	Search   SearchService
	Catalogs CatalogService
}

// Options are the transport-level settings.
type Options struct {
	Address      string
	StaticImgDir string
	// Production hides internal error text from responses.
	Production bool
}

type Server struct {
	address      string
	staticImgDir string
	production   bool
	logger       logging.Logger
	sessions     *session.Manager
	services     Services
	images       storage.ImageStore
	ping         func(context.Context) error
	handler      http.Handler
}

// NewServer builds the server and its router. ping backs /health and may be nil.
func NewServer(opts Options, l logging.Logger, sessions *session.Manager, svc Services,
	images storage.ImageStore, ping func(context.Context) error) *Server {
	s := &Server{
		address:      opts.Address,
		staticImgDir: opts.StaticImgDir,
		production:   opts.Production,
		logger:       l.With("module", "http_server"),
		sessions:     sessions,
		services:     svc,
		images:       images,
		ping:         ping,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
