// Package hardware reads the external trigger signals (device shake,
// microphone yell) from an Arduino bridge. Two transports are provided:
// a direct serial connection and an MQTT subscription for bridges that
// publish over the network. Both latch each signal until it is read.
package hardware

import "sync"

// SignalSource exposes the edge-triggered hardware signals. Each check
// returns whether the signal fired since the last check and resets its
// own flag; a single physical event is reported exactly once.
type SignalSource interface {
	// CheckShake reports and resets the shake flag.
	CheckShake() bool

	// CheckYell reports and resets the yell flag.
	CheckYell() bool

	// Close stops the underlying reader.
	Close() error
}

// Wire protocol lines sent by the Arduino bridge.
const (
	lineShake = "SHAKE"
	lineYell  = "YELL"
	lineReady = "ARDUINO_READY"
)

// latch is an edge-triggered flag: Set arms it, Take reads and disarms
// it. Multiple Sets between Takes collapse into one report.
type latch struct {
	mu  sync.Mutex
	set bool
}

func (l *latch) Set() {
	l.mu.Lock()
	l.set = true
	l.mu.Unlock()
}

func (l *latch) Take() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	was := l.set
	l.set = false
	return was
}
