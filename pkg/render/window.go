package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ragelab/go-ragemeter/pkg/vision"
	"github.com/ragelab/go-ragemeter/pkg/vision/detection"
)

// Slot box colors, BGR like the rest of gocv.
var (
	colorLeft       = color.RGBA{G: 255}         // green
	colorRight      = color.RGBA{B: 255}         // blue
	colorCalibrated = color.RGBA{R: 255, G: 255} // yellow
	colorProgress   = color.RGBA{R: 255, G: 165} // orange
	colorLabelText  = color.RGBA{R: 255, G: 255, B: 255}
)

// Window renders the overlay into an on-screen gocv window.
type Window struct {
	win    *gocv.Window
	closed bool
}

// NewWindow creates the display window.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Draw decodes the frame, paints the overlay and pumps the window event
// loop once. Returns the pressed key, or KeyNone.
func (w *Window) Draw(frame vision.Frame, state vision.State) (int, error) {
	if w.closed {
		return KeyNone, nil
	}

	img, err := gocv.IMDecode(frame.JPEG, gocv.IMReadColor)
	if err != nil {
		return KeyNone, fmt.Errorf("decode frame: %w", err)
	}
	defer img.Close()
	if img.Empty() {
		return KeyNone, nil
	}

	drawSubject(&img, state.Left, colorLeft)
	drawSubject(&img, state.Right, colorRight)
	drawCalibrationStatus(&img, state)

	w.win.IMShow(img)
	key := w.win.WaitKey(1)
	if key == KeyNone {
		return KeyNone, nil
	}
	return key, nil
}

// drawSubject paints one slot's box and label banner.
func drawSubject(img *gocv.Mat, sub vision.SubjectState, c color.RGBA) {
	if sub.Box == nil {
		return
	}
	rect := regionRect(*sub.Box)
	gocv.Rectangle(img, rect, c, 2)

	label := string(sub.Stable)
	if sub.Raw != sub.Stable {
		label = fmt.Sprintf("%s (%s)", sub.Stable, sub.Raw)
	}

	// Filled banner above the box so the text stays readable.
	banner := image.Rect(rect.Min.X, rect.Min.Y-22, rect.Max.X, rect.Min.Y)
	gocv.Rectangle(img, banner, c, -1)
	gocv.PutText(img, label,
		image.Pt(rect.Min.X+4, rect.Min.Y-6),
		gocv.FontHersheySimplex, 0.5, colorLabelText, 1)
}

// drawCalibrationStatus paints the bottom status line.
func drawCalibrationStatus(img *gocv.Mat, state vision.State) {
	text, c := calibrationLine(state)
	gocv.PutText(img, text,
		image.Pt(10, img.Rows()-12),
		gocv.FontHersheySimplex, 0.6, c, 2)
}

// calibrationLine summarizes calibration progress for the overlay.
func calibrationLine(state vision.State) (string, color.RGBA) {
	if state.Left.Calibrated && state.Right.Calibrated {
		return "calibrated - press r to reset", colorCalibrated
	}
	return fmt.Sprintf("calibrating left %d/%d right %d/%d",
		state.Left.CalibrationSamples, state.Left.CalibrationNeeded,
		state.Right.CalibrationSamples, state.Right.CalibrationNeeded), colorProgress
}

// regionRect converts a detection region to an image.Rectangle.
func regionRect(r detection.Region) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Close destroys the window.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.win.Close()
}

// Verify Window implements Renderer at compile time.
var _ Renderer = (*Window)(nil)
