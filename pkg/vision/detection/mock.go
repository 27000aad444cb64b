package detection

import "sync"

// Mock implements Detector for testing. Behavior is customized via the
// function field; by default it finds no faces.
type Mock struct {
	// DetectFunc is called when Detect is invoked.
	DetectFunc func(jpeg []byte) ([]Region, error)

	mu    sync.Mutex
	calls int
}

// Detect calls DetectFunc and records the call.
func (m *Mock) Detect(jpeg []byte) ([]Region, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.DetectFunc != nil {
		return m.DetectFunc(jpeg)
	}
	return nil, nil
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }

// Calls returns how many times Detect was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Verify Mock implements Detector at compile time.
var _ Detector = (*Mock)(nil)
