// Package vision contains the core analysis pipeline: the shared state
// store between the fast capture loop and the slow classifier worker, the
// face-to-subject assignment, and the worker itself.
package vision

import (
	"time"

	"github.com/ragelab/go-ragemeter/pkg/emotion"
	"github.com/ragelab/go-ragemeter/pkg/vision/detection"
)

// Slot identifies a positional subject bucket.
type Slot string

// The two subject slots plus the hardware pseudo-subject used by alerts.
const (
	SlotLeft     Slot = "left"
	SlotRight    Slot = "right"
	SlotHardware Slot = "hardware"
)

// Frame is one captured camera image as JPEG bytes plus its capture time.
// Frames are copied, never aliased, across the store boundary.
type Frame struct {
	JPEG      []byte
	Timestamp time.Time
}

// Clone returns an independent copy of the frame.
func (f Frame) Clone() Frame {
	out := Frame{Timestamp: f.Timestamp}
	if f.JPEG != nil {
		out.JPEG = make([]byte, len(f.JPEG))
		copy(out.JPEG, f.JPEG)
	}
	return out
}

// SubjectState is the published analysis result for one subject slot.
type SubjectState struct {
	// Stable is the smoothed label the dispatcher acts on.
	Stable emotion.Label `json:"stable"`

	// Raw is this cycle's pre-smoothing label, shown on the overlay.
	Raw emotion.Label `json:"raw"`

	// Box is the detected face region, nil when no face was assigned.
	Box *detection.Region `json:"box,omitempty"`

	// Calibration progress for the dashboard.
	Calibrated         bool `json:"calibrated"`
	CalibrationSamples int  `json:"calibration_samples"`
	CalibrationNeeded  int  `json:"calibration_needed"`
}

// unknownSubject returns a cleared subject state keeping calibration info.
func unknownSubject(samples, needed int, calibrated bool) SubjectState {
	return SubjectState{
		Stable:             emotion.Unknown,
		Raw:                emotion.Unknown,
		Calibrated:         calibrated,
		CalibrationSamples: samples,
		CalibrationNeeded:  needed,
	}
}

// State is the full per-cycle result the worker publishes. It is always
// written and read as a unit; readers never see fields from two different
// publish cycles.
type State struct {
	Left  SubjectState `json:"left"`
	Right SubjectState `json:"right"`

	// Faces is how many faces detection reported this cycle (may exceed
	// two; extras are ignored for alerting).
	Faces int `json:"faces"`

	// UpdatedAt is when the worker published this state.
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the state, including region pointers.
func (s State) Clone() State {
	out := s
	if s.Left.Box != nil {
		box := *s.Left.Box
		out.Left.Box = &box
	}
	if s.Right.Box != nil {
		box := *s.Right.Box
		out.Right.Box = &box
	}
	return out
}

// Subject returns the state for the given slot.
func (s State) Subject(slot Slot) SubjectState {
	if slot == SlotRight {
		return s.Right
	}
	return s.Left
}
