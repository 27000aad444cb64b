package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ragelab/go-ragemeter/pkg/camera"
	"github.com/ragelab/go-ragemeter/pkg/classify"
	"github.com/ragelab/go-ragemeter/pkg/dispatch"
	"github.com/ragelab/go-ragemeter/pkg/hardware"
	"github.com/ragelab/go-ragemeter/pkg/lights"
	"github.com/ragelab/go-ragemeter/pkg/render"
	"github.com/ragelab/go-ragemeter/pkg/roast"
	"github.com/ragelab/go-ragemeter/pkg/speaker"
	"github.com/ragelab/go-ragemeter/pkg/vision"
	"github.com/ragelab/go-ragemeter/pkg/vision/detection"
)

type fixture struct {
	app      *App
	camera   *camera.Mock
	store    *vision.Store
	signals  *hardware.Mock
	speaker  *speaker.Mock
	lights   *lights.Mock
	renderer *render.Mock
}

func newFixture() *fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := vision.NewStore()
	analyzer := vision.NewAnalyzer(vision.DefaultConfig(), store,
		&detection.Mock{}, classify.NewMock(), logger)

	f := &fixture{
		camera:   &camera.Mock{},
		store:    store,
		signals:  &hardware.Mock{},
		speaker:  &speaker.Mock{},
		lights:   &lights.Mock{},
		renderer: &render.Mock{},
	}
	f.app = New(DefaultConfig(), Components{
		Camera:     f.camera,
		Store:      store,
		Analyzer:   analyzer,
		Signals:    f.signals,
		Dispatcher: dispatch.New(dispatch.DefaultConfig(), logger),
		Roasts:     roast.NewRegistry(),
		Speaker:    f.speaker,
		Lights:     f.lights,
		Renderer:   f.renderer,
		Logger:     logger,
	})
	return f
}

func TestStep_PublishesFrame(t *testing.T) {
	f := newFixture()

	if quit := f.app.step(context.Background()); quit {
		t.Fatal("Quit on a plain step")
	}

	if f.camera.Calls() != 1 {
		t.Errorf("Capture calls: got %d, want 1", f.camera.Calls())
	}
	if _, ok := f.store.Frame(); !ok {
		t.Error("Frame was not published to the store")
	}
	if f.renderer.Calls() != 1 {
		t.Errorf("Draw calls: got %d, want 1", f.renderer.Calls())
	}
}

func TestStep_CaptureFailureSkipsCycle(t *testing.T) {
	f := newFixture()
	f.camera.CaptureFunc = func() (vision.Frame, error) {
		return vision.Frame{}, errors.New("device busy")
	}

	if quit := f.app.step(context.Background()); quit {
		t.Fatal("Quit on a capture failure")
	}
	if _, ok := f.store.Frame(); ok {
		t.Error("A failed capture still published a frame")
	}
	if f.renderer.Calls() != 0 {
		t.Error("Rendered without a frame")
	}
}

func TestStep_ShakeAlertSpeaksAndFlashes(t *testing.T) {
	f := newFixture()
	f.signals.TriggerShake()

	f.app.step(context.Background())

	spoken := f.speaker.Calls()
	if len(spoken) != 1 {
		t.Fatalf("Speak calls: got %d, want 1", len(spoken))
	}
	if !strings.Contains(spoken[0], "all you scrubs") {
		t.Errorf("Phrase not addressed to everyone: %q", spoken[0])
	}

	// Flash runs in its own goroutine; wait briefly for it.
	deadline := time.Now().Add(time.Second)
	for {
		if hasOp(f.lights.Ops(), "flash") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("LED flash never happened")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStep_NoSignalNoAlert(t *testing.T) {
	f := newFixture()

	f.app.step(context.Background())

	if len(f.speaker.Calls()) != 0 {
		t.Errorf("Spoke without any trigger: %v", f.speaker.Calls())
	}
}

func TestStep_SpeakFailureDoesNotStopLoop(t *testing.T) {
	f := newFixture()
	f.speaker.SpeakFunc = func(ctx context.Context, text string) error {
		return errors.New("player missing")
	}
	f.signals.TriggerYell()

	if quit := f.app.step(context.Background()); quit {
		t.Error("Quit on a playback failure")
	}
}

func TestStep_QuitKey(t *testing.T) {
	f := newFixture()
	f.renderer.PressKey(render.KeyQuit)

	if quit := f.app.step(context.Background()); !quit {
		t.Error("Quit key did not stop the loop")
	}
}

func TestStep_ResetKey(t *testing.T) {
	f := newFixture()
	f.renderer.PressKey(render.KeyReset)

	if quit := f.app.step(context.Background()); quit {
		t.Error("Reset key stopped the loop")
	}
}

func TestRun_StartsAndStops(t *testing.T) {
	f := newFixture()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := f.app.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if f.camera.Calls() == 0 {
		t.Error("Fast loop never captured a frame")
	}
	ops := f.lights.Ops()
	if !hasOp(ops, "on") {
		t.Error("Ring was never lit at startup")
	}
	if ops[len(ops)-1] != "off" {
		t.Errorf("Last ring op: got %q, want off", ops[len(ops)-1])
	}
}

func hasOp(ops []string, want string) bool {
	for _, op := range ops {
		if op == want {
			return true
		}
	}
	return false
}
