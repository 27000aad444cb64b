package camera

import (
	"sync"
	"time"

	"github.com/ragelab/go-ragemeter/pkg/vision"
)

// Mock implements Source for testing.
type Mock struct {
	// CaptureFunc is called when Capture is invoked. If nil, a tiny
	// fixed frame is returned.
	CaptureFunc func() (vision.Frame, error)

	mu    sync.Mutex
	calls int
}

// Capture calls CaptureFunc and records the call.
func (m *Mock) Capture() (vision.Frame, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.CaptureFunc != nil {
		return m.CaptureFunc()
	}
	return vision.Frame{JPEG: []byte{0xff, 0xd8, 0xff, 0xd9}, Timestamp: time.Now()}, nil
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }

// Calls returns how many times Capture was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Verify Mock implements Source at compile time.
var _ Source = (*Mock)(nil)
