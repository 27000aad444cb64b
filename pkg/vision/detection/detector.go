// Package detection provides face detection for the analysis worker.
package detection

import "sort"

// Region is a detected face bounding box in frame pixel coordinates.
type Region struct {
	X, Y       int     // Top-left corner
	W, H       int     // Width and height
	Confidence float64 // Detection confidence (0-1)
}

// CenterX returns the horizontal center of the region.
func (r Region) CenterX() int {
	return r.X + r.W/2
}

// Area returns the area of the bounding box in pixels.
func (r Region) Area() int {
	return r.W * r.H
}

// Detector is the interface for face detection backends.
type Detector interface {
	// Detect finds faces in the JPEG image and returns their regions.
	Detect(jpeg []byte) ([]Region, error)

	// Close releases resources.
	Close() error
}

// Config holds detector configuration.
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.6)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
	MinFaceSize      int     // Discard detections smaller than this (pixels)
}

// DefaultConfig returns production defaults for YuNet.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.6,
		InputWidth:       320,
		InputHeight:      320,
		MinFaceSize:      30,
	}
}

// SortByX orders regions left to right by their x coordinate.
// The analysis worker relies on this order for subject assignment.
func SortByX(regions []Region) {
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].X < regions[j].X
	})
}
