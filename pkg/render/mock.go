package render

import (
	"sync"

	"github.com/ragelab/go-ragemeter/pkg/vision"
)

// Mock implements Renderer for testing. Keys queued with PressKey are
// returned by successive Draw calls.
type Mock struct {
	mu    sync.Mutex
	calls int
	keys  []int
}

// PressKey queues a key for a future Draw call.
func (m *Mock) PressKey(key int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, key)
}

// Draw records the call and pops the next queued key.
func (m *Mock) Draw(frame vision.Frame, state vision.State) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if len(m.keys) > 0 {
		key := m.keys[0]
		m.keys = m.keys[1:]
		return key, nil
	}
	return KeyNone, nil
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }

// Calls returns how many times Draw was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Verify Mock implements Renderer at compile time.
var _ Renderer = (*Mock)(nil)
