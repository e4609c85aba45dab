package mock

import (
	"context"
	"sync"

	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/port"
)

// Dispatcher implements the task dispatcher port for tests.
type Dispatcher struct {
	mu sync.Mutex

	// captured inputs
	Enqueued [][]model.StorageEvent

	// errors
	Err error

	// call flags
	Called bool
}

var _ port.TaskDispatcher = (*Dispatcher)(nil)

func (m *Dispatcher) EnqueueProcessEvents(ctx context.Context, events []model.StorageEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Called = true
	if m.Err != nil {
		return m.Err
	}
	m.Enqueued = append(m.Enqueued, events)
	return nil
}
