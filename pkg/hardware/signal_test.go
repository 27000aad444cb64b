package hardware

import (
	"io"
	"log/slog"
	"sync"
	"testing"
)

func TestLatch_EdgeTriggered(t *testing.T) {
	var l latch

	if l.Take() {
		t.Error("Unarmed latch reported set")
	}

	l.Set()
	if !l.Take() {
		t.Error("Armed latch did not report set")
	}
	if l.Take() {
		t.Error("Latch did not reset after Take")
	}
}

func TestLatch_MultipleSetsCollapse(t *testing.T) {
	var l latch

	l.Set()
	l.Set()
	l.Set()

	if !l.Take() {
		t.Fatal("Latch should be set")
	}
	if l.Take() {
		t.Error("Three sets reported more than once")
	}
}

func TestLatch_ConcurrentSetAndTake(t *testing.T) {
	var l latch
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				l.Set()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				l.Take()
			}
		}()
	}
	wg.Wait()
}

func TestSerialSource_LineHandling(t *testing.T) {
	s := &SerialSource{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	s.handleLine("SHAKE\r")
	if !s.CheckShake() {
		t.Error("SHAKE line did not latch the shake flag")
	}
	if s.CheckYell() {
		t.Error("SHAKE line latched the yell flag")
	}

	s.handleLine("YELL")
	if !s.CheckYell() {
		t.Error("YELL line did not latch the yell flag")
	}

	// Ready and garbage lines latch nothing.
	s.handleLine("ARDUINO_READY")
	s.handleLine("gyro calibrating...")
	if s.CheckShake() || s.CheckYell() {
		t.Error("Non-signal lines latched a flag")
	}
}

func TestMQTTSource_PayloadHandling(t *testing.T) {
	s := &MQTTSource{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	s.handlePayload("SHAKE")
	s.handlePayload("YELL\n")
	if !s.CheckShake() || !s.CheckYell() {
		t.Error("Payloads did not latch their flags")
	}

	s.handlePayload("bogus")
	if s.CheckShake() || s.CheckYell() {
		t.Error("Unknown payload latched a flag")
	}
}

func TestMock_Triggers(t *testing.T) {
	m := &Mock{}

	m.TriggerShake()
	if !m.CheckShake() {
		t.Error("TriggerShake did not arm the flag")
	}
	if m.CheckShake() {
		t.Error("Shake flag did not reset")
	}

	m.TriggerYell()
	if !m.CheckYell() {
		t.Error("TriggerYell did not arm the flag")
	}
}
