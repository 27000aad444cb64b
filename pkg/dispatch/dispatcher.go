// Package dispatch decides when the pipeline's analysis output and the
// external hardware signals turn into alerts. It enforces the per-kind
// cooldowns and the cross-reset rule that keeps a single real-world event
// from producing a burst of alerts.
package dispatch

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ragelab/go-ragemeter/pkg/emotion"
	"github.com/ragelab/go-ragemeter/pkg/vision"
)

// Trigger is the kind of condition that fired an alert.
type Trigger string

const (
	TriggerShake Trigger = "shake"
	TriggerYell  Trigger = "yell"
	TriggerAnger Trigger = "anger"
)

// AlertEvent is one fired alert. Events are ephemeral: produced in a
// dispatch pass, consumed by the alert pipeline, and kept only in the
// recent-history ring for the dashboard.
type AlertEvent struct {
	ID      uuid.UUID   `json:"id"`
	Subject vision.Slot `json:"subject"`
	Trigger Trigger     `json:"trigger"`
	Time    time.Time   `json:"time"`
}

// Config holds the dispatcher's tunable parameters.
type Config struct {
	// HardwareCooldown gates shake/yell alerts.
	HardwareCooldown time.Duration

	// PlayerCooldown gates each subject's anger alerts, independently
	// per slot.
	PlayerCooldown time.Duration

	// HistorySize is how many recent alerts the dashboard can see.
	HistorySize int
}

// DefaultConfig returns the recommended dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		HardwareCooldown: 10 * time.Second,
		PlayerCooldown:   10 * time.Second,
		HistorySize:      20,
	}
}

// Dispatcher runs once per fast-loop iteration and fires at most one
// alert per pass. Check is called from the fast loop only; History is
// safe to call from other goroutines.
type Dispatcher struct {
	config  Config
	logger  *slog.Logger
	history *history

	// now is replaceable for tests.
	now func() time.Time

	lastHardware time.Time
	lastLeft     time.Time
	lastRight    time.Time
}

// New creates a dispatcher. All cooldowns start expired, so the first
// matching condition fires immediately.
func New(cfg Config, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		config:  cfg,
		logger:  logger.With("component", "dispatch"),
		history: newHistory(cfg.HistorySize),
		now:     time.Now,
	}
}

// Check evaluates one dispatch pass. Priority order, first match wins and
// skips the rest for this pass:
//
//  1. A hardware signal (shake or yell) off cooldown fires a hardware
//     alert and resets every cooldown, so neither subject alerts right
//     after a shake.
//  2. The left subject's stable label is angry and its cooldown expired:
//     fire, resetting the left and hardware cooldowns.
//  3. The right subject, analogously.
//
// Returns nil when nothing fired.
func (d *Dispatcher) Check(state vision.State, shake, yell bool) *AlertEvent {
	now := d.now()

	if (shake || yell) && now.Sub(d.lastHardware) > d.config.HardwareCooldown {
		trigger := TriggerShake
		if !shake {
			trigger = TriggerYell
		}
		d.lastHardware = now
		d.lastLeft = now
		d.lastRight = now
		return d.fire(vision.SlotHardware, trigger, now)
	}

	if state.Left.Stable == emotion.Angry && now.Sub(d.lastLeft) > d.config.PlayerCooldown {
		d.lastLeft = now
		d.lastHardware = now
		return d.fire(vision.SlotLeft, TriggerAnger, now)
	}

	if state.Right.Stable == emotion.Angry && now.Sub(d.lastRight) > d.config.PlayerCooldown {
		d.lastRight = now
		d.lastHardware = now
		return d.fire(vision.SlotRight, TriggerAnger, now)
	}

	return nil
}

func (d *Dispatcher) fire(subject vision.Slot, trigger Trigger, now time.Time) *AlertEvent {
	ev := AlertEvent{
		ID:      uuid.New(),
		Subject: subject,
		Trigger: trigger,
		Time:    now,
	}
	d.history.add(ev)
	d.logger.Info("alert fired",
		"id", ev.ID, "subject", ev.Subject, "trigger", ev.Trigger)
	return &ev
}

// History returns the most recent alerts, newest first.
func (d *Dispatcher) History() []AlertEvent {
	return d.history.recent()
}
