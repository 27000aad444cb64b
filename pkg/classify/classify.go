// Package classify provides the emotion classifier capability used by the
// analysis worker.
//
// The production implementation talks to a DeepFace-style scoring sidecar
// over HTTP: the worker ships a JPEG frame plus a face region and gets back
// per-emotion confidence scores. The call may legitimately take hundreds of
// milliseconds, which is why it only ever runs on the worker's own loop.
package classify

import (
	"context"

	"github.com/ragelab/go-ragemeter/pkg/emotion"
	"github.com/ragelab/go-ragemeter/pkg/vision/detection"
)

// Classifier scores the emotion of a single face region within a frame.
type Classifier interface {
	// Classify returns per-emotion confidence scores for the face at
	// region in the JPEG frame. Failures are per-cycle events for the
	// caller, never fatal.
	Classify(ctx context.Context, jpeg []byte, region detection.Region) (emotion.Vector, error)

	// Health checks that the scoring service is reachable.
	Health(ctx context.Context) error

	// Close releases any resources held by the classifier.
	Close() error
}
