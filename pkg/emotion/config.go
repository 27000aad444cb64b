package emotion

// Config holds the tunable parameters for the emotion pipeline.
type Config struct {
	// Smoothing
	WindowSize          int // Number of recent raw labels to track per subject
	ConfidenceThreshold int // Occurrences required before a label becomes stable

	// Calibration
	SamplesNeeded int // Raw vectors averaged into the baseline before it locks

	// RemapFearToAngry folds the classifier's "fear" channel into "angry"
	// before smoothing. Kept from the original pipeline as an explicit
	// toggle; whether it is policy or tuning artifact is undecided upstream.
	RemapFearToAngry bool

	// Decision rule thresholds
	Thresholds Thresholds
}

// DefaultConfig returns the validated defaults for the pipeline.
func DefaultConfig() Config {
	return Config{
		WindowSize:          7,
		ConfidenceThreshold: 4,
		SamplesNeeded:       10,
		RemapFearToAngry:    true,
		Thresholds:          DefaultThresholds(),
	}
}

// Thresholds holds the numeric constants for the anger decision rules.
// The values drifted between pipeline revisions; treat these as tuning
// knobs, not derived quantities.
type Thresholds struct {
	// Delta mode (baseline locked)
	DeltaAnger        float64 // Rule 1: anger rise over baseline
	DeltaNegativeSum  float64 // Rule 2: combined anger+disgust+sad rise
	DeltaAngerMinor   float64 // Rule 2: anger component floor
	DeltaDisgustMinor float64 // Rule 2: disgust component floor
	DeltaDisgust      float64 // Rule 3: disgust rise over baseline
	DeltaAngerModest  float64 // Rule 4: anger rise paired with a happiness drop
	DeltaHappyDrop    float64 // Rule 4: happiness drop (negative)

	// Fallback mode (absolute scores, baseline not yet locked)
	AngerFloor       float64 // Rule 1: minimum anger score
	AngerBoost       float64 // Rule 1: weight applied to anger
	DominantFraction float64 // Rule 1: fraction of the dominant score to beat
	NegativeSum      float64 // Rule 2: combined anger+disgust+sad
	AngerMinor       float64 // Rule 2: anger component floor
	DisgustHigh      float64 // Rule 2: disgust component floor
	NeutralMask      float64 // Rule 3: neutral score hiding leaked negatives
	MaskedAnger      float64 // Rule 3: anger floor behind a neutral mask
	MaskedDisgust    float64 // Rule 3: disgust floor behind a neutral mask
	DisgustAlone     float64 // Rule 4: disgust on its own
	FearHigh         float64 // Rule 5: fear component
	FearAnger        float64 // Rule 5: anger component
	SurpriseHigh     float64 // Rule 6: surprise component
	SurpriseAnger    float64 // Rule 6: anger component
	AngerModerate    float64 // Rule 7: anger floor
	HappyLow         float64 // Rule 7: happiness ceiling
	RunnerUpFraction float64 // Rule 7: fraction of the second-ranked score
}

// DefaultThresholds returns the tuned values from the final pipeline
// revision.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DeltaAnger:        8,
		DeltaNegativeSum:  12,
		DeltaAngerMinor:   3,
		DeltaDisgustMinor: 6,
		DeltaDisgust:      10,
		DeltaAngerModest:  5,
		DeltaHappyDrop:    -5,

		AngerFloor:       8,
		AngerBoost:       2.5,
		DominantFraction: 0.4,
		NegativeSum:      25,
		AngerMinor:       5,
		DisgustHigh:      12,
		NeutralMask:      30,
		MaskedAnger:      8,
		MaskedDisgust:    10,
		DisgustAlone:     18,
		FearHigh:         15,
		FearAnger:        8,
		SurpriseHigh:     20,
		SurpriseAnger:    6,
		AngerModerate:    10,
		HappyLow:         15,
		RunnerUpFraction: 0.7,
	}
}
