package emotion

// Decide converts a raw score vector into a single label using the anger
// decision rules. If baseline is non-nil the delta rules apply; otherwise
// the absolute-score fallback rules apply. Rules are evaluated in order
// and the first match wins.
func Decide(v Vector, baseline Vector, t Thresholds) Label {
	if len(v) == 0 {
		return Unknown
	}

	if baseline != nil {
		if decideDelta(v, baseline, t) {
			return Angry
		}
		dom, _ := v.Dominant()
		return dom
	}

	if decideAbsolute(v, t) {
		return Angry
	}
	dom, _ := v.Dominant()
	return dom
}

// decideDelta checks the baseline-relative rules. A rise in anger over the
// subject's own neutral state counts for more than its absolute level.
func decideDelta(v Vector, baseline Vector, t Thresholds) bool {
	d := v.Sub(baseline)
	dAnger := d.Get(Angry)
	dDisgust := d.Get(Disgust)
	dSad := d.Get(Sad)
	dHappy := d.Get(Happy)

	// Rule 1: anger rose sharply from baseline.
	if dAnger > t.DeltaAnger {
		return true
	}

	// Rule 2: combined rise across the negative channels.
	if dAnger+dDisgust+dSad > t.DeltaNegativeSum &&
		(dAnger > t.DeltaAngerMinor || dDisgust > t.DeltaDisgustMinor) {
		return true
	}

	// Rule 3: disgust alone rose sharply.
	if dDisgust > t.DeltaDisgust {
		return true
	}

	// Rule 4: moderate anger rise while happiness fell (frustration).
	if dAnger > t.DeltaAngerModest && dHappy < t.DeltaHappyDrop {
		return true
	}

	return false
}

// decideAbsolute checks the absolute-score fallback rules used before the
// baseline locks.
func decideAbsolute(v Vector, t Thresholds) bool {
	anger := v.Get(Angry)
	disgust := v.Get(Disgust)
	fear := v.Get(Fear)
	sad := v.Get(Sad)
	neutral := v.Get(Neutral)
	surprise := v.Get(Surprise)
	happy := v.Get(Happy)

	// Rule 1: boosted anger competitive with the dominant channel.
	if anger >= t.AngerFloor {
		_, domScore := v.Dominant()
		if anger*t.AngerBoost >= domScore*t.DominantFraction {
			return true
		}
	}

	// Rule 2: frustration as a blend of negative channels.
	if anger+disgust+sad > t.NegativeSum &&
		(anger > t.AngerMinor || disgust > t.DisgustHigh) {
		return true
	}

	// Rule 3: a neutral mask with negatives leaking through.
	if neutral > t.NeutralMask &&
		(anger > t.MaskedAnger || disgust > t.MaskedDisgust) {
		return true
	}

	// Rule 4: high disgust on its own.
	if disgust > t.DisgustAlone {
		return true
	}

	// Rule 5: fear + anger (panic).
	if fear > t.FearHigh && anger > t.FearAnger {
		return true
	}

	// Rule 6: surprise + anger (shocked frustration).
	if surprise > t.SurpriseHigh && anger > t.SurpriseAnger {
		return true
	}

	// Rule 7: moderate anger without happiness, with anger in (or near)
	// the top two ranked channels.
	if anger > t.AngerModerate && happy < t.HappyLow {
		ranked := v.Ranked()
		if len(ranked) >= 2 {
			if ranked[0] == Angry || ranked[1] == Angry {
				return true
			}
			if anger >= v.Get(ranked[1])*t.RunnerUpFraction {
				return true
			}
		} else if len(ranked) == 1 && ranked[0] == Angry {
			return true
		}
	}

	return false
}

// Remap applies the fear-to-angry fold when enabled. It operates on the
// decided label, upstream of smoothing.
func Remap(l Label, remapFear bool) Label {
	if remapFear && l == Fear {
		return Angry
	}
	return l
}
