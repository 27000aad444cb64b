package vision

import (
	"context"
	"log/slog"
	"time"

	"github.com/ragelab/go-ragemeter/pkg/classify"
	"github.com/ragelab/go-ragemeter/pkg/emotion"
	"github.com/ragelab/go-ragemeter/pkg/vision/detection"
)

// Analyzer is the background classifier worker. It repeatedly takes the
// newest frame from the store, detects faces, classifies emotion per
// assigned subject, applies baseline calibration and smoothing, and
// publishes the result back into the store.
//
// The worker owns all per-subject analysis state. It never stops on a
// per-cycle failure; recovery is always "try again next cycle".
type Analyzer struct {
	config     Config
	store      *Store
	detector   detection.Detector
	classifier classify.Classifier
	logger     *slog.Logger

	left  *subject
	right *subject
}

// subject bundles the per-slot calibration and smoothing state.
type subject struct {
	slot       Slot
	calibrator *emotion.Calibrator
	smoother   *emotion.Smoother
}

// NewAnalyzer creates the classifier worker.
func NewAnalyzer(cfg Config, store *Store, det detection.Detector, cls classify.Classifier, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	newSubject := func(slot Slot) *subject {
		return &subject{
			slot:       slot,
			calibrator: emotion.NewCalibrator(cfg.Emotion.SamplesNeeded),
			smoother:   emotion.NewSmoother(cfg.Emotion.WindowSize, cfg.Emotion.ConfidenceThreshold),
		}
	}
	return &Analyzer{
		config:     cfg,
		store:      store,
		detector:   det,
		classifier: cls,
		logger:     logger.With("component", "vision.analyzer"),
		left:       newSubject(SlotLeft),
		right:      newSubject(SlotRight),
	}
}

// Run executes the worker loop until ctx is cancelled. The loop is
// interruptible between cycles, not mid-classification; callers join it
// before completing shutdown.
func (a *Analyzer) Run(ctx context.Context) {
	a.logger.Info("analysis worker started", "interval", a.config.Interval)

	ticker := time.NewTicker(a.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("analysis worker stopped")
			return
		case <-ticker.C:
			a.cycle(ctx)
		}
	}
}

// cycle runs one take-frame, analyze, publish pass. The ticker in Run
// provides the pause between passes, including while no frame has been
// published yet.
func (a *Analyzer) cycle(ctx context.Context) {
	frame, ok := a.store.Frame()
	if !ok {
		return
	}

	regions, err := a.detector.Detect(frame.JPEG)
	if err != nil {
		// Detection failure clears both slots for this cycle; the
		// worker keeps looping.
		a.logger.Warn("face detection failed", "error", err)
		a.publishCleared(0)
		return
	}

	leftBox, rightBox := Assign(regions)

	st := State{
		Faces:     len(regions),
		UpdatedAt: time.Now(),
		Left:      a.analyzeSubject(ctx, frame, leftBox, a.left),
		Right:     a.analyzeSubject(ctx, frame, rightBox, a.right),
	}
	a.store.PublishState(st)
}

// analyzeSubject classifies one slot's face (if any), runs calibration and
// the decision rules, and smooths the result.
func (a *Analyzer) analyzeSubject(ctx context.Context, frame Frame, box *detection.Region, sub *subject) SubjectState {
	raw := emotion.Unknown

	if box != nil {
		scores, err := a.classifier.Classify(ctx, frame.JPEG, *box)
		if err != nil {
			// Unknown for this cycle only; never propagated.
			a.logger.Warn("emotion classification failed",
				"slot", sub.slot, "error", err)
		} else {
			if !sub.calibrator.Calibrated() {
				sub.calibrator.AddSample(scores)
				if sub.calibrator.CalculateBaseline() {
					a.logger.Info("baseline calibration complete",
						"slot", sub.slot,
						"samples", sub.calibrator.SampleCount())
				}
			}
			raw = emotion.Decide(scores, sub.calibrator.Baseline(), a.config.Emotion.Thresholds)
			raw = emotion.Remap(raw, a.config.Emotion.RemapFearToAngry)
		}
	}

	stable := sub.smoother.Observe(raw)

	out := SubjectState{
		Stable:             stable,
		Raw:                raw,
		Calibrated:         sub.calibrator.Calibrated(),
		CalibrationSamples: sub.calibrator.SampleCount(),
		CalibrationNeeded:  sub.calibrator.SamplesNeeded(),
	}
	if box != nil {
		b := *box
		out.Box = &b
	}
	return out
}

// publishCleared publishes an all-unknown state with no boxes. The
// smoothers still record the miss so their windows stay honest.
func (a *Analyzer) publishCleared(faces int) {
	a.left.smoother.Observe(emotion.Unknown)
	a.right.smoother.Observe(emotion.Unknown)

	a.store.PublishState(State{
		Faces:     faces,
		UpdatedAt: time.Now(),
		Left: unknownSubject(a.left.calibrator.SampleCount(),
			a.left.calibrator.SamplesNeeded(), a.left.calibrator.Calibrated()),
		Right: unknownSubject(a.right.calibrator.SampleCount(),
			a.right.calibrator.SamplesNeeded(), a.right.calibrator.Calibrated()),
	})
}

// ResetCalibration clears both subjects' baselines so a new neutral state
// is learned. It is only ever invoked explicitly (dashboard or keypress).
func (a *Analyzer) ResetCalibration() {
	a.left.calibrator.Reset()
	a.right.calibrator.Reset()
	a.logger.Info("baseline calibration reset")
}
