package vision

import (
	"time"

	"github.com/ragelab/go-ragemeter/pkg/emotion"
)

// Config holds the tunable parameters for the analysis worker.
type Config struct {
	// Interval is the worker's cycle period. It is fixed and independent
	// of the camera frame rate: the capture loop never waits on analysis,
	// and the worker never runs faster than this.
	Interval time.Duration

	// Emotion holds the smoothing/calibration/decision parameters.
	Emotion emotion.Config
}

// DefaultConfig returns the recommended worker configuration.
func DefaultConfig() Config {
	return Config{
		Interval: 400 * time.Millisecond,
		Emotion:  emotion.DefaultConfig(),
	}
}
