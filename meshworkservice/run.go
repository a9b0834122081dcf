package meshworkservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/meshwork-social/meshwork/internal/api"
	"github.com/meshwork-social/meshwork/internal/app"
	"github.com/meshwork-social/meshwork/internal/config"
	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/docstore/memory"
	"github.com/meshwork-social/meshwork/internal/docstore/postgres"
	"github.com/meshwork-social/meshwork/internal/docstore/sqlite"
	"github.com/meshwork-social/meshwork/internal/genai"
	"github.com/meshwork-social/meshwork/internal/genai/openai"
	"github.com/meshwork-social/meshwork/internal/logger"
)

// Run starts the meshwork HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("meshwork-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("docstore_driver", cfg.DocStoreDriver).
		Int("http_port", cfg.HTTPPort).
		Bool("genai_enabled", cfg.GenAIEnabled).
		Msg("Meshwork service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	backend, err := newBackend(cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Document store unavailable")
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn().Err(err).Msg("Document store close failed")
		}
	}()

	// Fail fast when the store cannot be reached at startup.
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := backend.Ping(pingCtx); err != nil {
		log.Error().Stack().Err(err).Msg("Document store ping failed")
		return err
	}

	gen, cls := newTextProviders(cfg)
	a := app.New(backend, gen, cls)
	router := api.NewRouter(a, backend)

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newBackend selects the document-store backend from configuration.
func newBackend(cfg *config.Config, log zerolog.Logger) (docstore.Backend, error) {
	switch cfg.DocStoreDriver {
	case "memory":
		return memory.New(), nil
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return postgres.New(db), nil
	default:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("SQLite document store opened")
		return sqlite.New(db), nil
	}
}

// newTextProviders returns the generation and classification capabilities.
// When generation is disabled both calls refuse, and the concepts degrade on
// their own terms.
func newTextProviders(cfg *config.Config) (genai.Generator, genai.Classifier) {
	if !cfg.GenAIEnabled {
		return genai.Disabled{}, genai.Disabled{}
	}
	p := openai.New(cfg.GenModel, cfg.ModerationModel)
	return p, p
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
