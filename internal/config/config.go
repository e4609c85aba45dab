package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	Environment string
	WorkerName  string
	ServerPort  int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	Bucket         string

	// PublicBaseURL is the public URL base of the bucket; when empty the
	// worker hands the transcoder presigned download links instead.
	PublicBaseURL string

	TranscoderURL     string
	TranscoderTimeout time.Duration

	RedisAddr     string
	RedisPassword string

	WorkerConcurrency int
	ProcessTimeout    time.Duration

	PropertyMediumWidth  int
	PropertyMediumHeight int
	ThumbSize            int
	AvatarSize           int
	CoverWidth           int
	CoverHeight          int
	PreviewWidth         int
	PreviewHeight        int
	Quality              int
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	if !viper.IsSet("MINIO_ENDPOINT") {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
	}
	if !viper.IsSet("MINIO_ACCESS_KEY") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY is required")
	}
	if !viper.IsSet("MINIO_SECRET_KEY") {
		return nil, fmt.Errorf("MINIO_SECRET_KEY is required")
	}
	if !viper.IsSet("BUCKET") {
		return nil, fmt.Errorf("BUCKET is required")
	}

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("WORKER_NAME", "derivatives-worker")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("TRANSCODER_TIMEOUT_SECONDS", 30)
	viper.SetDefault("WORKER_CONCURRENCY", 10)
	viper.SetDefault("PROCESS_TIMEOUT_SECONDS", 30)

	viper.SetDefault("PROPERTY_MEDIUM_WIDTH", 800)
	viper.SetDefault("PROPERTY_MEDIUM_HEIGHT", 600)
	viper.SetDefault("THUMB_SIZE", 160)
	viper.SetDefault("AVATAR_SIZE", 512)
	viper.SetDefault("COVER_WIDTH", 1920)
	viper.SetDefault("COVER_HEIGHT", 1080)
	viper.SetDefault("PREVIEW_WIDTH", 640)
	viper.SetDefault("PREVIEW_HEIGHT", 360)
	viper.SetDefault("QUALITY", 85)

	return &Settings{
		Environment: viper.GetString("ENVIRONMENT"),
		WorkerName:  viper.GetString("WORKER_NAME"),
		ServerPort:  viper.GetInt("SERVER_PORT"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		Bucket:         viper.GetString("BUCKET"),

		PublicBaseURL: viper.GetString("PUBLIC_BASE_URL"),

		TranscoderURL:     viper.GetString("TRANSCODER_URL"),
		TranscoderTimeout: time.Duration(viper.GetInt("TRANSCODER_TIMEOUT_SECONDS")) * time.Second,

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		WorkerConcurrency: viper.GetInt("WORKER_CONCURRENCY"),
		ProcessTimeout:    time.Duration(viper.GetInt("PROCESS_TIMEOUT_SECONDS")) * time.Second,

		PropertyMediumWidth:  viper.GetInt("PROPERTY_MEDIUM_WIDTH"),
		PropertyMediumHeight: viper.GetInt("PROPERTY_MEDIUM_HEIGHT"),
		ThumbSize:            viper.GetInt("THUMB_SIZE"),
		AvatarSize:           viper.GetInt("AVATAR_SIZE"),
		CoverWidth:           viper.GetInt("COVER_WIDTH"),
		CoverHeight:          viper.GetInt("COVER_HEIGHT"),
		PreviewWidth:         viper.GetInt("PREVIEW_WIDTH"),
		PreviewHeight:        viper.GetInt("PREVIEW_HEIGHT"),
		Quality:              viper.GetInt("QUALITY"),
	}, nil
}
