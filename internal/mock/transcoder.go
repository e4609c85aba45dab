package mock

import (
	"context"
	"sync"

	"github.com/fvidal/derivatives-ms-go/internal/port"
)

// Transcoder implements the transcoder port for tests.
type Transcoder struct {
	mu sync.Mutex

	// stored values
	Out *port.ResizeResult

	// captured inputs
	ImageReq port.ResizeRequest
	VideoReq port.ResizeRequest

	// errors
	ImageErr error
	VideoErr error

	// call flags
	ImageCalled bool
	VideoCalled bool
}

var _ port.Transcoder = (*Transcoder)(nil)

func (m *Transcoder) ResizeImage(ctx context.Context, req port.ResizeRequest) (*port.ResizeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImageCalled = true
	m.ImageReq = req
	if m.ImageErr != nil {
		return nil, m.ImageErr
	}
	return m.Out, nil
}

func (m *Transcoder) ResizeVideo(ctx context.Context, req port.ResizeRequest) (*port.ResizeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VideoCalled = true
	m.VideoReq = req
	if m.VideoErr != nil {
		return nil, m.VideoErr
	}
	return m.Out, nil
}
