package classify

import (
	"context"
	"sync"

	"github.com/ragelab/go-ragemeter/pkg/emotion"
	"github.com/ragelab/go-ragemeter/pkg/vision/detection"
)

// Mock implements Classifier for testing.
// All methods can be customized via function fields.
type Mock struct {
	// ClassifyFunc is called when Classify is invoked.
	// If nil, returns a flat neutral vector.
	ClassifyFunc func(ctx context.Context, jpeg []byte, region detection.Region) (emotion.Vector, error)

	// HealthFunc is called when Health is invoked.
	// If nil, returns nil (healthy).
	HealthFunc func(ctx context.Context) error

	mu    sync.Mutex
	calls []detection.Region
}

// NewMock creates a mock classifier that reports a calm neutral face.
func NewMock() *Mock {
	return &Mock{
		ClassifyFunc: func(ctx context.Context, jpeg []byte, region detection.Region) (emotion.Vector, error) {
			return emotion.Vector{
				emotion.Neutral: 70,
				emotion.Happy:   20,
				emotion.Angry:   2,
			}, nil
		},
	}
}

// WithError returns a mock whose Classify always fails with err.
func WithError(err error) *Mock {
	return &Mock{
		ClassifyFunc: func(ctx context.Context, jpeg []byte, region detection.Region) (emotion.Vector, error) {
			return nil, err
		},
		HealthFunc: func(ctx context.Context) error {
			return err
		},
	}
}

// Classify calls ClassifyFunc and records the region.
func (m *Mock) Classify(ctx context.Context, jpeg []byte, region detection.Region) (emotion.Vector, error) {
	m.mu.Lock()
	m.calls = append(m.calls, region)
	m.mu.Unlock()
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, jpeg, region)
	}
	return emotion.Vector{emotion.Neutral: 100}, nil
}

// Health calls HealthFunc.
func (m *Mock) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }

// Calls returns the regions passed to Classify, in order.
func (m *Mock) Calls() []detection.Region {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]detection.Region, len(m.calls))
	copy(out, m.calls)
	return out
}

// Verify Mock implements Classifier at compile time.
var _ Classifier = (*Mock)(nil)
