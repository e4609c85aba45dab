package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/fvidal/derivatives-ms-go/internal/classifier"
	"github.com/fvidal/derivatives-ms-go/internal/config"
	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/port"
	"github.com/fvidal/derivatives-ms-go/internal/storage"
	"github.com/fvidal/derivatives-ms-go/internal/task"
)

const batchSize = 10

// backfill walks a key prefix and enqueues synthetic Put events for every
// original media object found, so existing uploads get derivatives without
// waiting for new notifications.
func main() {
	prefix := flag.String("prefix", "", "only backfill keys under this prefix")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	strg := initStorage(cfg)
	dispatcher := initDispatcher(cfg)

	ctx := context.Background()
	keys, err := strg.ListFiles(ctx, *prefix)
	if err != nil {
		log.Fatalf("❌  Failed to list bucket %q: %v", cfg.Bucket, err)
	}

	var batch []model.StorageEvent
	enqueued := 0
	for _, key := range keys {
		if !classifier.IsMedia(key) || classifier.IsDerivative(key) {
			continue
		}
		if classifier.RoleOf(key) == model.RoleNone {
			continue
		}
		batch = append(batch, model.StorageEvent{
			Action:    model.ActionPut,
			Bucket:    cfg.Bucket,
			ObjectKey: key,
			Timestamp: time.Now().UTC(),
		})
		if len(batch) == batchSize {
			flush(ctx, dispatcher, batch)
			enqueued += len(batch)
			batch = nil
		}
	}
	if len(batch) > 0 {
		flush(ctx, dispatcher, batch)
		enqueued += len(batch)
	}

	log.Printf("✅  Backfill completed: %d of %d keys enqueued", enqueued, len(keys))
}

func flush(ctx context.Context, dispatcher port.TaskDispatcher, batch []model.StorageEvent) {
	if err := dispatcher.EnqueueProcessEvents(ctx, batch); err != nil {
		log.Fatalf("❌  Failed to enqueue backfill batch: %v", err)
	}
}

func initStorage(cfg *config.Settings) port.Storage {
	client, err := storage.NewMinioClient(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		log.Fatalf("❌  Failed to initialize MinIO client: %v", err)
	}
	strg, err := client.WithBucket(cfg.Bucket)
	if err != nil {
		log.Fatalf("❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
	}
	return strg
}

func initDispatcher(cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
