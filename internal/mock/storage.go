package mock

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/fvidal/derivatives-ms-go/internal/port"
	"github.com/fvidal/derivatives-ms-go/internal/usecase/derivative"
)

// Storage implements the storage port for tests. Files present in Files are
// served by GetFile; everything saved is captured in SavedData.
type Storage struct {
	mu sync.Mutex

	// stored values
	Files     map[string][]byte
	StatOut   port.FileInfo
	ListOut   []string
	ExistsOut bool

	// captured inputs
	SavedKeys         []string
	SavedData         map[string][]byte
	SavedContentTypes map[string]string

	// errors
	GetErr          error
	SaveErr         error
	StatErr         error
	ListErr         error
	FileExistsErr   error
	DownloadLinkErr error

	// call flags
	GetCalled          bool
	SaveCalled         bool
	StatCalled         bool
	ListCalled         bool
	FileExistsCalled   bool
	DownloadLinkCalled bool
}

var _ port.Storage = (*Storage)(nil)

type noopRSC struct{ io.ReadSeeker }

func (noopRSC) Close() error { return nil }

func (m *Storage) GetFile(ctx context.Context, fileKey string) (io.ReadSeekCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	data, ok := m.Files[fileKey]
	if !ok {
		return nil, derivative.ErrObjectNotFound
	}
	return noopRSC{bytes.NewReader(data)}, nil
}

func (m *Storage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalled = true
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if m.SavedData == nil {
		m.SavedData = make(map[string][]byte)
	}
	if m.SavedContentTypes == nil {
		m.SavedContentTypes = make(map[string]string)
	}
	m.SavedKeys = append(m.SavedKeys, fileKey)
	m.SavedData[fileKey] = data
	m.SavedContentTypes[fileKey] = opts["Content-Type"]
	return nil
}

func (m *Storage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatOut, nil
}

func (m *Storage) FileExists(ctx context.Context, fileKey string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FileExistsCalled = true
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}

func (m *Storage) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *Storage) GeneratePresignedDownloadURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DownloadLinkCalled = true
	if m.DownloadLinkErr != nil {
		return "", m.DownloadLinkErr
	}
	return "https://store.example.com/presigned/" + fileKey, nil
}
