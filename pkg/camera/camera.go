// Package camera provides the frame source for the capture loop. The
// production source wraps a V4L2 webcam through gocv; a mock is provided
// for pipeline tests without hardware.
package camera

import (
	"errors"

	"github.com/ragelab/go-ragemeter/pkg/vision"
)

// Sentinel errors.
var (
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("camera: source closed")

	// ErrEmptyFrame is returned when the device produced no image.
	ErrEmptyFrame = errors.New("camera: empty frame")
)

// Source produces frames for the capture loop. Capture must return
// quickly; a failure at startup is fatal, at runtime it means "no frame
// this cycle".
type Source interface {
	// Capture grabs the next frame as JPEG bytes.
	Capture() (vision.Frame, error)

	// Close releases the device.
	Close() error
}
