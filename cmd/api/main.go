package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5"
	"github.com/unrolled/secure"
	"golang.org/x/sync/errgroup"

	"github.com/Lelo88/catalog-editor/internal/config"
	"github.com/Lelo88/catalog-editor/internal/db"
	"github.com/Lelo88/catalog-editor/internal/docs"
	"github.com/Lelo88/catalog-editor/internal/health"
	"github.com/Lelo88/catalog-editor/internal/httpx"
	"github.com/Lelo88/catalog-editor/internal/logging"
	"github.com/Lelo88/catalog-editor/internal/products"
	"github.com/Lelo88/catalog-editor/internal/seed"
)

// appPool es lo que usamos de *pgxpool.Pool: ping para /ready y query para el seed.
type appPool interface {
	Ping(ctx context.Context) error
	Close()
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// appDeps agrupa las dependencias externas del proceso para poder testear run.
type appDeps struct {
	loadConfig func() (config.Config, error)
	newPool    func(ctx context.Context, url string) (appPool, error)
	serve      func(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error
	logOutput  io.Writer
}

var (
	loadConfigFn = config.Load
	newPoolFn    = func(ctx context.Context, url string) (appPool, error) {
		return db.NewPool(ctx, url)
	}
	serveFn = serveHTTP
	fatalf  = log.Fatal
)

func main() {
	// Contexto raíz del proceso: se cancela con SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := appDeps{
		loadConfig: loadConfigFn,
		newPool:    newPoolFn,
		serve:      serveFn,
		logOutput:  os.Stdout,
	}
	if err := run(ctx, deps); err != nil {
		fatalf(err)
	}
}

// run arma el Store, el loader del catálogo inicial y el servidor HTTP,
// y los corre juntos hasta que el contexto se cancela o alguno falla.
func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogFormat, deps.logOutput)

	ids, err := products.NewIDGenerator(cfg.IDStrategy)
	if err != nil {
		return err
	}
	store := products.NewStore(products.WithIDGenerator(ids))

	var source seed.Source = seed.Static{Products: seed.DefaultProducts(), Delay: cfg.SeedDelay}
	var pinger health.Pinger
	if cfg.DatabaseURL != "" {
		pool, err := deps.newPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		source = seed.NewPostgres(pool)
		pinger = pool
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           buildRouter(cfg, logger, store, pinger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		err := seed.NewLoader(source, store, logger).Run(groupCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	group.Go(func() error {
		// Si el servidor termina, el loader ya no tiene a quién servir.
		defer cancel()
		logger.Info("listening", slog.String("addr", server.Addr))
		return deps.serve(groupCtx, server, cfg.ShutdownTimeout)
	})

	if err := group.Wait(); err != nil {
		logger.Error("catalog editor stopped", slog.Any("error", err))
		return err
	}
	logger.Info("catalog editor stopped")
	return nil
}

// buildRouter arma el router con middlewares, health, docs y el editor.
func buildRouter(cfg config.Config, logger *slog.Logger, store *products.Store, pinger health.Pinger) http.Handler {
	r := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}).Handler)

	// Errores de routing se manejan a nivel router.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	healthHandler := health.New(store, pinger)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	docs.RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(httprate.Limit(cfg.RateLimit, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					httpx.Fail(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests")
				}),
			))
		}
		products.RegisterRoutes(r, products.NewHandler(store, logger))
	})

	return r
}

// serveHTTP corre el servidor hasta que ctx se cancela y luego hace shutdown ordenado.
func serveHTTP(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
