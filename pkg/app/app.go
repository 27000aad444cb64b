// Package app wires the capture loop, the analysis worker and the alert
// pipeline together. The fast loop captures frames, dispatches alerts
// and renders; the worker classifies in the background. The two only
// meet at the shared store.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ragelab/go-ragemeter/pkg/camera"
	"github.com/ragelab/go-ragemeter/pkg/dispatch"
	"github.com/ragelab/go-ragemeter/pkg/hardware"
	"github.com/ragelab/go-ragemeter/pkg/lights"
	"github.com/ragelab/go-ragemeter/pkg/render"
	"github.com/ragelab/go-ragemeter/pkg/roast"
	"github.com/ragelab/go-ragemeter/pkg/speaker"
	"github.com/ragelab/go-ragemeter/pkg/vision"
)

// Config holds the fast-loop configuration.
type Config struct {
	// CaptureInterval paces the fast loop. The camera itself may be
	// slower; the loop never waits on analysis.
	CaptureInterval time.Duration
}

// DefaultConfig returns the recommended fast-loop configuration.
func DefaultConfig() Config {
	return Config{
		CaptureInterval: 33 * time.Millisecond,
	}
}

// Components are the collaborators the fast loop drives. Renderer is
// optional (headless runs); everything else is required.
type Components struct {
	Camera     camera.Source
	Store      *vision.Store
	Analyzer   *vision.Analyzer
	Signals    hardware.SignalSource
	Dispatcher *dispatch.Dispatcher
	Roasts     *roast.Registry
	Speaker    speaker.Speaker
	Lights     lights.Controller
	Renderer   render.Renderer
	Logger     *slog.Logger
}

// App runs the two-loop pipeline.
type App struct {
	config Config
	c      Components
	logger *slog.Logger
}

// New creates the application from its wired components.
func New(cfg Config, c Components) *App {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		config: cfg,
		c:      c,
		logger: logger.With("component", "app"),
	}
}

// Run starts the worker and drives the fast loop until ctx is cancelled
// or the operator quits from the render window. The worker is joined
// before Run returns.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.c.Lights.On(lights.ColorIdle); err != nil {
		a.logger.Warn("LED ring unavailable", "error", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.c.Analyzer.Run(ctx)
	}()

	a.logger.Info("fast loop started", "interval", a.config.CaptureInterval)
	ticker := time.NewTicker(a.config.CaptureInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			if quit := a.step(ctx); quit {
				break loop
			}
		}
	}

	cancel()
	wg.Wait()

	if err := a.c.Lights.Off(); err != nil {
		a.logger.Warn("LED ring off failed", "error", err)
	}
	a.logger.Info("fast loop stopped")
	return nil
}

// step runs one fast-loop iteration: capture, dispatch, render. Returns
// true when the operator quit.
func (a *App) step(ctx context.Context) bool {
	frame, err := a.c.Camera.Capture()
	if err != nil {
		// No frame this cycle; the worker keeps serving the last one.
		a.logger.Warn("frame capture failed", "error", err)
		return false
	}
	a.c.Store.PublishFrame(frame)

	state, _ := a.c.Store.State()

	shake := a.c.Signals.CheckShake()
	yell := a.c.Signals.CheckYell()

	if ev := a.c.Dispatcher.Check(state, shake, yell); ev != nil {
		a.handleAlert(ctx, *ev)
	}

	if a.c.Renderer != nil {
		key, err := a.c.Renderer.Draw(frame, state)
		if err != nil {
			a.logger.Warn("render failed", "error", err)
			return false
		}
		switch key {
		case render.KeyQuit:
			a.logger.Info("quit requested")
			return true
		case render.KeyReset:
			a.c.Analyzer.ResetCalibration()
		}
	}
	return false
}

// handleAlert speaks the roast and flashes the ring. Speak blocks until
// playback completes, which spaces alerts out beyond the cooldowns.
// Failures are logged and swallowed; the loop never stops for an alert.
func (a *App) handleAlert(ctx context.Context, ev dispatch.AlertEvent) {
	phrase := a.c.Roasts.ForAlert(ev)
	a.logger.Info("alert", "subject", ev.Subject, "trigger", ev.Trigger, "phrase", phrase)

	go func() {
		if err := a.c.Lights.Flash(lights.ColorAlert); err != nil {
			a.logger.Warn("LED flash failed", "error", err)
		}
	}()

	if err := a.c.Speaker.Speak(ctx, phrase); err != nil {
		a.logger.Warn("playback failed", "error", err)
	}
}
