package vision

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ragelab/go-ragemeter/pkg/classify"
	"github.com/ragelab/go-ragemeter/pkg/emotion"
	"github.com/ragelab/go-ragemeter/pkg/vision/detection"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAnalyzer(det detection.Detector, cls classify.Classifier) (*Analyzer, *Store) {
	store := NewStore()
	return NewAnalyzer(DefaultConfig(), store, det, cls, testLogger()), store
}

func TestAnalyzer_NoFrameNoState(t *testing.T) {
	det := &detection.Mock{}
	a, store := testAnalyzer(det, classify.NewMock())

	a.cycle(context.Background())

	if _, ok := store.State(); ok {
		t.Error("Published a state before any frame existed")
	}
	if det.Calls() != 0 {
		t.Errorf("Detector invoked %d times with no frame", det.Calls())
	}
}

func TestAnalyzer_PublishesStateForDetectedFaces(t *testing.T) {
	det := &detection.Mock{
		DetectFunc: func(jpeg []byte) ([]detection.Region, error) {
			return []detection.Region{
				{X: 300, W: 80, H: 80},
				{X: 50, W: 80, H: 80},
			}, nil
		},
	}
	cls := classify.NewMock()
	a, store := testAnalyzer(det, cls)

	store.PublishFrame(Frame{JPEG: []byte{0xff, 0xd8}})
	a.cycle(context.Background())

	st, ok := store.State()
	if !ok {
		t.Fatal("Expected a published state")
	}
	if st.Faces != 2 {
		t.Errorf("Faces: got %d, want 2", st.Faces)
	}
	if st.Left.Box == nil || st.Left.Box.X != 50 {
		t.Errorf("Left box: got %v, want x=50", st.Left.Box)
	}
	if st.Right.Box == nil || st.Right.Box.X != 300 {
		t.Errorf("Right box: got %v, want x=300", st.Right.Box)
	}
	if st.Left.Raw != emotion.Neutral {
		t.Errorf("Left raw: got %q, want %q", st.Left.Raw, emotion.Neutral)
	}
	if got := len(cls.Calls()); got != 2 {
		t.Errorf("Classifier invoked %d times, want 2", got)
	}
}

func TestAnalyzer_SingleFaceLeavesRightUnknown(t *testing.T) {
	det := &detection.Mock{
		DetectFunc: func(jpeg []byte) ([]detection.Region, error) {
			return []detection.Region{{X: 100, W: 80, H: 80}}, nil
		},
	}
	a, store := testAnalyzer(det, classify.NewMock())

	store.PublishFrame(Frame{JPEG: []byte{1}})
	a.cycle(context.Background())

	st, _ := store.State()
	if st.Right.Raw != emotion.Unknown || st.Right.Box != nil {
		t.Errorf("Right slot: got %+v, want unknown with no box", st.Right)
	}
	if st.Left.Box == nil {
		t.Error("Left slot missing its box")
	}
}

func TestAnalyzer_DetectionFailureClearsSlots(t *testing.T) {
	det := &detection.Mock{
		DetectFunc: func(jpeg []byte) ([]detection.Region, error) {
			return nil, errors.New("decode failed")
		},
	}
	a, store := testAnalyzer(det, classify.NewMock())

	store.PublishFrame(Frame{JPEG: []byte{1}})
	a.cycle(context.Background())

	st, ok := store.State()
	if !ok {
		t.Fatal("Expected a cleared state to be published")
	}
	if st.Left.Stable != emotion.Unknown || st.Right.Stable != emotion.Unknown {
		t.Errorf("Slots not cleared: left=%q right=%q", st.Left.Stable, st.Right.Stable)
	}
	if st.Left.Box != nil || st.Right.Box != nil {
		t.Error("Cleared state still carries boxes")
	}
}

func TestAnalyzer_ClassifierFailureIsPerCycle(t *testing.T) {
	det := &detection.Mock{
		DetectFunc: func(jpeg []byte) ([]detection.Region, error) {
			return []detection.Region{{X: 100, W: 80, H: 80}}, nil
		},
	}
	a, store := testAnalyzer(det, classify.WithError(errors.New("sidecar down")))

	store.PublishFrame(Frame{JPEG: []byte{1}})
	a.cycle(context.Background())

	st, _ := store.State()
	if st.Left.Raw != emotion.Unknown {
		t.Errorf("Left raw after classify failure: got %q, want %q", st.Left.Raw, emotion.Unknown)
	}
	// The face was still found, so its box stays visible.
	if st.Left.Box == nil {
		t.Error("Classify failure dropped the detected box")
	}
}

func TestAnalyzer_CalibrationLocksAfterEnoughCycles(t *testing.T) {
	det := &detection.Mock{
		DetectFunc: func(jpeg []byte) ([]detection.Region, error) {
			return []detection.Region{{X: 100, W: 80, H: 80}}, nil
		},
	}
	cls := classify.NewMock()
	a, store := testAnalyzer(det, cls)
	store.PublishFrame(Frame{JPEG: []byte{1}})

	needed := DefaultConfig().Emotion.SamplesNeeded
	for i := 0; i < needed-1; i++ {
		a.cycle(context.Background())
	}
	st, _ := store.State()
	if st.Left.Calibrated {
		t.Fatalf("Calibrated after %d samples, want %d", needed-1, needed)
	}
	if st.Left.CalibrationSamples != needed-1 {
		t.Errorf("CalibrationSamples: got %d, want %d", st.Left.CalibrationSamples, needed-1)
	}

	a.cycle(context.Background())
	st, _ = store.State()
	if !st.Left.Calibrated {
		t.Error("Calibration did not lock after enough samples")
	}
	// Right slot never saw a face and must not have calibrated.
	if st.Right.Calibrated || st.Right.CalibrationSamples != 0 {
		t.Errorf("Right slot calibration moved without a face: %+v", st.Right)
	}
}

func TestAnalyzer_DeltaModeAfterCalibration(t *testing.T) {
	// Calibrate on a calm face, then spike anger well past the delta
	// threshold: the raw label must flip to angry.
	calm := emotion.Vector{emotion.Neutral: 70, emotion.Happy: 20, emotion.Angry: 2}
	angry := emotion.Vector{emotion.Neutral: 30, emotion.Angry: 40, emotion.Disgust: 10}

	scores := calm
	det := &detection.Mock{
		DetectFunc: func(jpeg []byte) ([]detection.Region, error) {
			return []detection.Region{{X: 100, W: 80, H: 80}}, nil
		},
	}
	cls := &classify.Mock{
		ClassifyFunc: func(ctx context.Context, jpeg []byte, region detection.Region) (emotion.Vector, error) {
			return scores.Clone(), nil
		},
	}
	a, store := testAnalyzer(det, cls)
	store.PublishFrame(Frame{JPEG: []byte{1}})

	for i := 0; i < DefaultConfig().Emotion.SamplesNeeded; i++ {
		a.cycle(context.Background())
	}

	scores = angry
	a.cycle(context.Background())

	st, _ := store.State()
	if st.Left.Raw != emotion.Angry {
		t.Errorf("Raw after anger spike: got %q, want %q", st.Left.Raw, emotion.Angry)
	}
}

func TestAnalyzer_StableLagsBehindRaw(t *testing.T) {
	// A single raw observation must not change the stable label once the
	// window is full of something else.
	det := &detection.Mock{
		DetectFunc: func(jpeg []byte) ([]detection.Region, error) {
			return []detection.Region{{X: 100, W: 80, H: 80}}, nil
		},
	}
	scores := emotion.Vector{emotion.Neutral: 90}
	cls := &classify.Mock{
		ClassifyFunc: func(ctx context.Context, jpeg []byte, region detection.Region) (emotion.Vector, error) {
			return scores.Clone(), nil
		},
	}
	cfg := DefaultConfig()
	cfg.Emotion.SamplesNeeded = 2
	store := NewStore()
	a := NewAnalyzer(cfg, store, det, cls, testLogger())
	store.PublishFrame(Frame{JPEG: []byte{1}})

	for i := 0; i < cfg.Emotion.WindowSize+cfg.Emotion.SamplesNeeded; i++ {
		a.cycle(context.Background())
	}

	scores = emotion.Vector{emotion.Neutral: 20, emotion.Angry: 60}
	a.cycle(context.Background())

	st, _ := store.State()
	if st.Left.Raw != emotion.Angry {
		t.Fatalf("Raw: got %q, want %q", st.Left.Raw, emotion.Angry)
	}
	if st.Left.Stable != emotion.Neutral {
		t.Errorf("Stable flipped on one observation: got %q, want %q", st.Left.Stable, emotion.Neutral)
	}
}

func TestAnalyzer_ResetCalibration(t *testing.T) {
	det := &detection.Mock{
		DetectFunc: func(jpeg []byte) ([]detection.Region, error) {
			return []detection.Region{
				{X: 50, W: 80, H: 80},
				{X: 300, W: 80, H: 80},
			}, nil
		},
	}
	a, store := testAnalyzer(det, classify.NewMock())
	store.PublishFrame(Frame{JPEG: []byte{1}})

	for i := 0; i < DefaultConfig().Emotion.SamplesNeeded; i++ {
		a.cycle(context.Background())
	}
	st, _ := store.State()
	if !st.Left.Calibrated || !st.Right.Calibrated {
		t.Fatal("Both slots should be calibrated before reset")
	}

	a.ResetCalibration()
	a.cycle(context.Background())

	st, _ = store.State()
	if st.Left.Calibrated || st.Right.Calibrated {
		t.Error("Calibration still locked after reset")
	}
	if st.Left.CalibrationSamples != 1 {
		t.Errorf("Samples after reset + one cycle: got %d, want 1", st.Left.CalibrationSamples)
	}
}
