package dispatch

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ragelab/go-ragemeter/pkg/emotion"
	"github.com/ragelab/go-ragemeter/pkg/vision"
)

// fakeClock lets tests step dispatcher time deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testDispatcher() (*Dispatcher, *fakeClock) {
	d := New(DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	clock := &fakeClock{t: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	d.now = clock.now
	return d, clock
}

func angryState(left, right bool) vision.State {
	st := vision.State{
		Left:  vision.SubjectState{Stable: emotion.Neutral},
		Right: vision.SubjectState{Stable: emotion.Neutral},
	}
	if left {
		st.Left.Stable = emotion.Angry
	}
	if right {
		st.Right.Stable = emotion.Angry
	}
	return st
}

func TestCheck_NothingToFire(t *testing.T) {
	d, _ := testDispatcher()
	if ev := d.Check(angryState(false, false), false, false); ev != nil {
		t.Errorf("Fired with no condition: %+v", ev)
	}
}

func TestCheck_FirstAngerFiresImmediately(t *testing.T) {
	d, clock := testDispatcher()

	ev := d.Check(angryState(true, false), false, false)
	if ev == nil {
		t.Fatal("Expected a left anger alert")
	}
	if ev.Subject != vision.SlotLeft || ev.Trigger != TriggerAnger {
		t.Errorf("Got %s/%s, want left/anger", ev.Subject, ev.Trigger)
	}
	if !ev.Time.Equal(clock.t) {
		t.Errorf("Event time %v, want %v", ev.Time, clock.t)
	}
}

func TestCheck_CooldownBlocksUntilExpiry(t *testing.T) {
	d, clock := testDispatcher()
	cooldown := DefaultConfig().PlayerCooldown

	if d.Check(angryState(true, false), false, false) == nil {
		t.Fatal("First alert should fire")
	}

	// Inside the cooldown: nothing, even with a continuing condition.
	clock.advance(cooldown - time.Second)
	if ev := d.Check(angryState(true, false), false, false); ev != nil {
		t.Errorf("Fired inside cooldown: %+v", ev)
	}

	// Just past it: exactly one fires.
	clock.advance(2 * time.Second)
	if d.Check(angryState(true, false), false, false) == nil {
		t.Error("Expected an alert after the cooldown expired")
	}
	if ev := d.Check(angryState(true, false), false, false); ev != nil {
		t.Errorf("Double-fired after cooldown: %+v", ev)
	}
}

func TestCheck_PerSubjectCooldownsAreIndependent(t *testing.T) {
	d, clock := testDispatcher()

	if ev := d.Check(angryState(true, false), false, false); ev == nil || ev.Subject != vision.SlotLeft {
		t.Fatalf("Expected left alert, got %+v", ev)
	}

	// Right fires even while left is cooling down.
	clock.advance(time.Second)
	ev := d.Check(angryState(true, true), false, false)
	if ev == nil || ev.Subject != vision.SlotRight {
		t.Fatalf("Expected right alert, got %+v", ev)
	}
}

func TestCheck_HardwareBeatsAnger(t *testing.T) {
	d, _ := testDispatcher()

	ev := d.Check(angryState(true, true), true, false)
	if ev == nil || ev.Subject != vision.SlotHardware || ev.Trigger != TriggerShake {
		t.Fatalf("Expected hardware/shake alert, got %+v", ev)
	}
}

func TestCheck_YellTriggerKind(t *testing.T) {
	d, _ := testDispatcher()

	ev := d.Check(angryState(false, false), false, true)
	if ev == nil || ev.Trigger != TriggerYell {
		t.Fatalf("Expected yell alert, got %+v", ev)
	}
}

func TestCheck_HardwareResetsPlayerCooldowns(t *testing.T) {
	d, clock := testDispatcher()

	if ev := d.Check(angryState(false, false), true, false); ev == nil {
		t.Fatal("Hardware alert should fire")
	}

	// An angry detection right after the shake must not fire.
	clock.advance(time.Second)
	if ev := d.Check(angryState(true, true), false, false); ev != nil {
		t.Errorf("Player alert fired inside hardware-reset cooldown: %+v", ev)
	}

	clock.advance(DefaultConfig().PlayerCooldown)
	if d.Check(angryState(true, false), false, false) == nil {
		t.Error("Player alert should fire once the reset cooldown passes")
	}
}

func TestCheck_PlayerAlertResetsHardwareCooldown(t *testing.T) {
	d, clock := testDispatcher()

	if ev := d.Check(angryState(true, false), false, false); ev == nil {
		t.Fatal("Player alert should fire")
	}

	// A shake right after a player alert is suppressed.
	clock.advance(time.Second)
	if ev := d.Check(angryState(false, false), true, false); ev != nil {
		t.Errorf("Hardware alert fired inside player-reset cooldown: %+v", ev)
	}

	clock.advance(DefaultConfig().HardwareCooldown)
	if d.Check(angryState(false, false), true, false) == nil {
		t.Error("Hardware alert should fire once the reset cooldown passes")
	}
}

func TestCheck_LeftDoesNotResetRight(t *testing.T) {
	d, clock := testDispatcher()

	if ev := d.Check(angryState(true, false), false, false); ev == nil {
		t.Fatal("Left alert should fire")
	}

	clock.advance(time.Second)
	ev := d.Check(angryState(false, true), false, false)
	if ev == nil || ev.Subject != vision.SlotRight {
		t.Errorf("Right cooldown was reset by a left alert: got %+v", ev)
	}
}

func TestCheck_UniqueEventIDs(t *testing.T) {
	d, clock := testDispatcher()

	first := d.Check(angryState(true, false), false, false)
	clock.advance(time.Minute)
	second := d.Check(angryState(true, false), false, false)
	if first == nil || second == nil {
		t.Fatal("Both alerts should fire")
	}
	if first.ID == second.ID {
		t.Error("Alert IDs collided")
	}
}

func TestHistory_NewestFirstAndBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistorySize = 3
	cfg.PlayerCooldown = 0
	d := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	clock := &fakeClock{t: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	d.now = clock.now

	var last *AlertEvent
	for i := 0; i < 5; i++ {
		clock.advance(time.Millisecond)
		last = d.Check(angryState(true, false), false, false)
		if last == nil {
			t.Fatalf("Alert %d did not fire", i)
		}
	}

	got := d.History()
	if len(got) != 3 {
		t.Fatalf("History length: got %d, want 3", len(got))
	}
	if got[0].ID != last.ID {
		t.Error("History is not newest-first")
	}
	for i := 1; i < len(got); i++ {
		if got[i].Time.After(got[i-1].Time) {
			t.Errorf("History out of order at %d", i)
		}
	}
}
