package port

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Storage defines the object-store operations the pipeline consumes. The
// adapter is bound to a single bucket at construction.
type Storage interface {
	GetFile(ctx context.Context, fileKey string) (io.ReadSeekCloser, error)
	SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error
	StatFile(ctx context.Context, fileKey string) (FileInfo, error)
	FileExists(ctx context.Context, fileKey string) (bool, error)
	ListFiles(ctx context.Context, prefix string) ([]string, error)
	GeneratePresignedDownloadURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error)
}
