package lights

import "sync"

// Mock implements Controller for testing, recording each call.
type Mock struct {
	mu     sync.Mutex
	ops    []string
	colors []Color
}

// On records the call.
func (m *Mock) On(c Color) error {
	m.record("on", c)
	return nil
}

// Off records the call.
func (m *Mock) Off() error {
	m.record("off", ColorOff)
	return nil
}

// Flash records the call.
func (m *Mock) Flash(c Color) error {
	m.record("flash", c)
	return nil
}

// Close records the call.
func (m *Mock) Close() error {
	m.record("close", ColorOff)
	return nil
}

func (m *Mock) record(op string, c Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
	m.colors = append(m.colors, c)
}

// Ops returns the recorded operations, in order.
func (m *Mock) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.ops))
	copy(out, m.ops)
	return out
}

// Colors returns the color passed to each recorded operation.
func (m *Mock) Colors() []Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Color, len(m.colors))
	copy(out, m.colors)
	return out
}

// Verify Mock implements Controller at compile time.
var _ Controller = (*Mock)(nil)
