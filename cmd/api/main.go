package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fvidal/derivatives-ms-go/internal/config"
	"github.com/fvidal/derivatives-ms-go/internal/handler/api"
	"github.com/fvidal/derivatives-ms-go/internal/logger"
	"github.com/fvidal/derivatives-ms-go/internal/port"
	"github.com/fvidal/derivatives-ms-go/internal/storage"
	"github.com/fvidal/derivatives-ms-go/internal/task"
	"github.com/fvidal/derivatives-ms-go/internal/transcoder"
	"github.com/fvidal/derivatives-ms-go/internal/usecase/derivative"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	strg := initStorage(ctx, cfg)
	rpc := transcoder.NewClient(cfg.TranscoderURL, cfg.TranscoderTimeout)

	generator := derivative.NewGenerator(
		strg,
		rpc,
		derivative.NewRecipeTable(derivative.RecipeSizes{
			PropertyMediumWidth:  cfg.PropertyMediumWidth,
			PropertyMediumHeight: cfg.PropertyMediumHeight,
			ThumbSize:            cfg.ThumbSize,
			AvatarSize:           cfg.AvatarSize,
			CoverWidth:           cfg.CoverWidth,
			CoverHeight:          cfg.CoverHeight,
			Quality:              cfg.Quality,
		}),
		derivative.NewVideoRecipeSet(derivative.VideoRecipes{
			ThumbSize:     cfg.ThumbSize,
			PreviewWidth:  cfg.PreviewWidth,
			PreviewHeight: cfg.PreviewHeight,
			Quality:       cfg.Quality,
		}),
		cfg.PublicBaseURL,
	)

	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Queue dispatch enabled")
	} else {
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured — incoming events will be dropped")
	}

	r := initRouter(ctx)
	r.Get("/health", api.HealthHandler(cfg.WorkerName, cfg.Environment))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Post("/process", api.ProcessMediaHandler(generator))
	r.Post("/events", api.EventsWebhookHandler(dispatcher))

	listenRouter(ctx, r, cfg)
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	client, err := storage.NewMinioClient(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	strg, err := client.WithBucket(cfg.Bucket)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}
	return strg
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 Diagnostics API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")
}
