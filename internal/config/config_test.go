package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "minio")
	t.Setenv("MINIO_SECRET_KEY", "secret")
	t.Setenv("BUCKET", "media")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("MINIO_ACCESS_KEY", "minio")
	t.Setenv("MINIO_SECRET_KEY", "secret")
	t.Setenv("BUCKET", "media")

	// t.Setenv cannot unset; an exported empty string still counts as set
	// for viper, so remove the variable through the OS directly.
	t.Setenv("MINIO_ENDPOINT", "placeholder")
	if err := os.Unsetenv("MINIO_ENDPOINT"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when MINIO_ENDPOINT is absent")
	} else if !strings.Contains(err.Error(), "MINIO_ENDPOINT") {
		t.Errorf("error = %v, want mention of MINIO_ENDPOINT", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.WorkerConcurrency != 10 {
		t.Errorf("WorkerConcurrency = %d, want 10", cfg.WorkerConcurrency)
	}
	if cfg.ProcessTimeout != 30*time.Second {
		t.Errorf("ProcessTimeout = %v, want 30s", cfg.ProcessTimeout)
	}
	if cfg.PropertyMediumWidth != 800 || cfg.PropertyMediumHeight != 600 {
		t.Errorf("property medium = %dx%d, want 800x600", cfg.PropertyMediumWidth, cfg.PropertyMediumHeight)
	}
	if cfg.ThumbSize != 160 || cfg.AvatarSize != 512 {
		t.Errorf("thumb/avatar = %d/%d, want 160/512", cfg.ThumbSize, cfg.AvatarSize)
	}
	if cfg.CoverWidth != 1920 || cfg.CoverHeight != 1080 {
		t.Errorf("cover = %dx%d, want 1920x1080", cfg.CoverWidth, cfg.CoverHeight)
	}
	if cfg.Quality != 85 {
		t.Errorf("Quality = %d, want 85", cfg.Quality)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example.com")
	t.Setenv("TRANSCODER_URL", "http://transcoder:3000")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("THUMB_SIZE", "200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.PublicBaseURL != "https://cdn.example.com" {
		t.Errorf("PublicBaseURL = %q", cfg.PublicBaseURL)
	}
	if cfg.TranscoderURL != "http://transcoder:3000" {
		t.Errorf("TranscoderURL = %q", cfg.TranscoderURL)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.ThumbSize != 200 {
		t.Errorf("ThumbSize = %d, want 200", cfg.ThumbSize)
	}
}
