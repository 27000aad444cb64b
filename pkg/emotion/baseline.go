package emotion

import "sync"

// Calibrator learns a subject's neutral emotion vector from the first N raw
// observations. Until it locks, callers classify on absolute scores; after
// it locks, they classify on deltas from the baseline. The baseline never
// changes once computed except through Reset.
type Calibrator struct {
	mu sync.Mutex

	samplesNeeded int
	samples       []Vector
	baseline      Vector
	calibrated    bool
}

// NewCalibrator creates a calibrator that locks after samplesNeeded
// observations.
func NewCalibrator(samplesNeeded int) *Calibrator {
	if samplesNeeded <= 0 {
		samplesNeeded = DefaultConfig().SamplesNeeded
	}
	return &Calibrator{samplesNeeded: samplesNeeded}
}

// AddSample records one raw vector toward the baseline. Samples arriving
// after the baseline locks are ignored.
func (c *Calibrator) AddSample(v Vector) {
	if len(v) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calibrated {
		return
	}
	c.samples = append(c.samples, v.Clone())
}

// CalculateBaseline computes the baseline as the per-channel mean of the
// collected samples. Returns false until enough samples exist; once the
// baseline is locked it always returns true without recomputing.
func (c *Calibrator) CalculateBaseline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.calibrated {
		return true
	}
	if len(c.samples) < c.samplesNeeded {
		return false
	}

	sum := make(Vector)
	for _, s := range c.samples {
		for l, score := range s {
			sum[l] += score
		}
	}
	n := float64(len(c.samples))
	baseline := make(Vector, len(sum))
	for l, total := range sum {
		baseline[l] = total / n
	}

	c.baseline = baseline
	c.calibrated = true
	return true
}

// Baseline returns a copy of the locked baseline, or nil if not calibrated.
func (c *Calibrator) Baseline() Vector {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.calibrated {
		return nil
	}
	return c.baseline.Clone()
}

// Calibrated reports whether the baseline has locked.
func (c *Calibrator) Calibrated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calibrated
}

// SampleCount returns how many samples have been collected so far.
func (c *Calibrator) SampleCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}

// SamplesNeeded returns the lock threshold.
func (c *Calibrator) SamplesNeeded() int {
	return c.samplesNeeded
}

// Reset clears the sample buffer and unlocks calibration so a new baseline
// can be learned. It is never invoked automatically.
func (c *Calibrator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = nil
	c.baseline = nil
	c.calibrated = false
}
