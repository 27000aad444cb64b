package hardware

// Mock implements SignalSource for testing. Trigger signals with
// TriggerShake/TriggerYell; checks consume them like the real sources.
type Mock struct {
	shake latch
	yell  latch
}

// TriggerShake arms the shake flag.
func (m *Mock) TriggerShake() { m.shake.Set() }

// TriggerYell arms the yell flag.
func (m *Mock) TriggerYell() { m.yell.Set() }

// CheckShake reports and resets the shake flag.
func (m *Mock) CheckShake() bool { return m.shake.Take() }

// CheckYell reports and resets the yell flag.
func (m *Mock) CheckYell() bool { return m.yell.Take() }

// Close is a no-op.
func (m *Mock) Close() error { return nil }

// Verify Mock implements SignalSource at compile time.
var _ SignalSource = (*Mock)(nil)
