package mock

import (
	"context"
	"sync"

	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/port"
)

// Processor implements the DerivativeProcessor port for tests.
type Processor struct {
	mu sync.Mutex

	// stored values
	Out model.ProcessingResult

	// captured inputs
	Calls []port.ProcessInput

	// errors
	Err error
}

var _ port.DerivativeProcessor = (*Processor)(nil)

func (m *Processor) Process(ctx context.Context, in port.ProcessInput) (model.ProcessingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, in)
	out := m.Out
	out.ObjectKey = in.ObjectKey
	if m.Err != nil {
		out.Success = false
		out.Error = m.Err.Error()
		return out, m.Err
	}
	out.Success = true
	return out, nil
}

// CallCount returns how many times Process ran.
func (m *Processor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
