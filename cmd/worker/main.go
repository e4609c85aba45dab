package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fvidal/derivatives-ms-go/internal/config"
	workerHandler "github.com/fvidal/derivatives-ms-go/internal/handler/worker"
	"github.com/fvidal/derivatives-ms-go/internal/ingest"
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
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	strg := initStorage(ctx, cfg)

	if cfg.TranscoderURL == "" {
		// loud on purpose: every message will fail retryably until the
		// binding is fixed
		logger.Warn(ctx, "⚠️  TRANSCODER_URL is not set — all processing will fail until it is configured")
	}
	rpc := transcoder.NewClient(cfg.TranscoderURL, cfg.TranscoderTimeout)

	generator := derivative.NewGenerator(
		strg,
		rpc,
		derivative.NewRecipeTable(recipeSizes(cfg)),
		derivative.NewVideoRecipeSet(videoRecipes(cfg)),
		cfg.PublicBaseURL,
	)
	ingester := ingest.New(generator, cfg.ProcessTimeout)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessEvents, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseProcessEventsPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessEventsHandler(ctx, p, ingester)
	})

	runWorker(ctx, mux, cfg)
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

func recipeSizes(cfg *config.Settings) derivative.RecipeSizes {
	return derivative.RecipeSizes{
		PropertyMediumWidth:  cfg.PropertyMediumWidth,
		PropertyMediumHeight: cfg.PropertyMediumHeight,
		ThumbSize:            cfg.ThumbSize,
		AvatarSize:           cfg.AvatarSize,
		CoverWidth:           cfg.CoverWidth,
		CoverHeight:          cfg.CoverHeight,
		Quality:              cfg.Quality,
	}
}

func videoRecipes(cfg *config.Settings) derivative.VideoRecipes {
	return derivative.VideoRecipes{
		ThumbSize:     cfg.ThumbSize,
		PreviewWidth:  cfg.PreviewWidth,
		PreviewHeight: cfg.PreviewHeight,
		Quality:       cfg.Quality,
	}
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: cfg.WorkerConcurrency})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish in-flight tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	logger.Info(ctx, "✅  Worker gracefully stopped")
}
