package vision

import "github.com/ragelab/go-ragemeter/pkg/vision/detection"

// Assign maps detected faces to the two subject slots by horizontal
// position: the leftmost face is the left subject, the second-leftmost is
// the right subject. Faces beyond the second are ignored by the strictly
// two-subject design. There is no identity tracking: a slot can pick up a
// different person from one frame to the next if the ordering changes.
//
// Zero faces returns (nil, nil); one face fills only the left slot.
func Assign(regions []detection.Region) (left, right *detection.Region) {
	if len(regions) == 0 {
		return nil, nil
	}

	sorted := make([]detection.Region, len(regions))
	copy(sorted, regions)
	detection.SortByX(sorted)

	l := sorted[0]
	left = &l
	if len(sorted) > 1 {
		r := sorted[1]
		right = &r
	}
	return left, right
}
