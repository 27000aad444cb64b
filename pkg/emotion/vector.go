// Package emotion implements the emotion signal processing for the rage
// meter: raw classifier score vectors, per-subject baseline calibration,
// sliding-window smoothing, and the anger decision rules.
package emotion

import "sort"

// Label identifies one emotion channel from the classifier.
type Label string

// The classifier's fixed label set, plus Unknown for "no reading".
const (
	Angry    Label = "angry"
	Disgust  Label = "disgust"
	Fear     Label = "fear"
	Happy    Label = "happy"
	Sad      Label = "sad"
	Surprise Label = "surprise"
	Neutral  Label = "neutral"
	Unknown  Label = "unknown"
)

// Labels is the canonical channel order. Used for deterministic iteration.
var Labels = []Label{Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral}

// Vector maps emotion channels to non-negative confidence scores.
// Scores are whatever the classifier emits; they need not sum to 100.
type Vector map[Label]float64

// Get returns the score for a channel, or 0 if absent.
func (v Vector) Get(l Label) float64 {
	return v[l]
}

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// Dominant returns the channel with the highest score and that score.
// Ties resolve in canonical channel order. An empty vector is Unknown.
func (v Vector) Dominant() (Label, float64) {
	best := Unknown
	bestScore := 0.0
	found := false
	for _, l := range Labels {
		s, ok := v[l]
		if !ok {
			continue
		}
		if !found || s > bestScore {
			best = l
			bestScore = s
			found = true
		}
	}
	if !found {
		return Unknown, 0
	}
	return best, bestScore
}

// Ranked returns the channels present in the vector sorted by descending
// score, ties in canonical channel order.
func (v Vector) Ranked() []Label {
	present := make([]Label, 0, len(v))
	for _, l := range Labels {
		if _, ok := v[l]; ok {
			present = append(present, l)
		}
	}
	sort.SliceStable(present, func(i, j int) bool {
		return v[present[i]] > v[present[j]]
	})
	return present
}

// Sub returns v - other per channel, over the union of channels.
func (v Vector) Sub(other Vector) Vector {
	out := make(Vector, len(v))
	for k, s := range v {
		out[k] = s - other.Get(k)
	}
	for k, s := range other {
		if _, ok := v[k]; !ok {
			out[k] = -s
		}
	}
	return out
}
