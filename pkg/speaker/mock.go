package speaker

import (
	"context"
	"sync"
)

// Mock implements Speaker for testing.
type Mock struct {
	// SpeakFunc is called when Speak is invoked. If nil, Speak succeeds
	// immediately.
	SpeakFunc func(ctx context.Context, text string) error

	mu    sync.Mutex
	calls []string
}

// Speak calls SpeakFunc and records the text.
func (m *Mock) Speak(ctx context.Context, text string) error {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()
	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text)
	}
	return nil
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }

// Calls returns the spoken texts, in order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Verify Mock implements Speaker at compile time.
var _ Speaker = (*Mock)(nil)
