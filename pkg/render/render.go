// Package render draws the live overlay: face boxes, emotion labels and
// calibration progress on top of the camera feed. The renderer consumes
// read-only snapshots and never touches shared state.
package render

import (
	"github.com/ragelab/go-ragemeter/pkg/vision"
)

// Keys returned by Draw when the operator presses one in the window.
const (
	KeyNone  = -1
	KeyQuit  = 'q'
	KeyReset = 'r'
)

// Renderer displays one frame with its analysis overlay. Draw returns
// the pressed key, or KeyNone.
type Renderer interface {
	Draw(frame vision.Frame, state vision.State) (int, error)
	Close() error
}
