package emotion

// Smoother turns frame-by-frame raw labels into a stable label using a
// fixed-capacity sliding window and a confidence threshold. The stable
// label only changes when a label clearly dominates the window, which
// stops the output flickering between cycles.
type Smoother struct {
	window    int
	threshold int
	history   []Label
	current   Label
}

// NewSmoother creates a smoother with the given window capacity and
// confidence threshold.
func NewSmoother(window, threshold int) *Smoother {
	if window <= 0 {
		window = DefaultConfig().WindowSize
	}
	if threshold <= 0 {
		threshold = DefaultConfig().ConfidenceThreshold
	}
	return &Smoother{
		window:    window,
		threshold: threshold,
		history:   make([]Label, 0, window),
		current:   Unknown,
	}
}

// Observe records a new raw label and returns the stable label.
//
// While the history is shorter than the threshold, the mode of what has
// been seen so far is returned. Once enough history exists, the stable
// label switches only when some label reaches the threshold count within
// the window; otherwise the previous stable label is kept.
func (s *Smoother) Observe(raw Label) Label {
	s.history = append(s.history, raw)
	if len(s.history) > s.window {
		s.history = s.history[1:]
	}

	mode, count := s.mode()

	if len(s.history) < s.threshold {
		s.current = mode
		return s.current
	}

	if count >= s.threshold {
		s.current = mode
	}
	return s.current
}

// Current returns the stable label without recording an observation.
func (s *Smoother) Current() Label {
	return s.current
}

// Reset clears the history and stable label.
func (s *Smoother) Reset() {
	s.history = s.history[:0]
	s.current = Unknown
}

// mode returns the most frequent label in the history and its count.
// Ties resolve to the label seen earliest in insertion order.
func (s *Smoother) mode() (Label, int) {
	if len(s.history) == 0 {
		return Unknown, 0
	}
	counts := make(map[Label]int, len(s.history))
	for _, l := range s.history {
		counts[l]++
	}
	best := s.history[0]
	bestCount := counts[best]
	for _, l := range s.history {
		if counts[l] > bestCount {
			best = l
			bestCount = counts[l]
		}
	}
	return best, bestCount
}
