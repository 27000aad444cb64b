package camera

import (
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ragelab/go-ragemeter/pkg/vision"
)

// Webcam captures frames from a local V4L2 device via gocv.
type Webcam struct {
	config Config

	mu     sync.Mutex
	cap    *gocv.VideoCapture
	mat    gocv.Mat
	closed bool
}

// NewWebcam opens the device and applies the requested capture mode.
func NewWebcam(cfg Config) (*Webcam, error) {
	cap, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("open device %d: %w", cfg.DeviceID, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))

	return &Webcam{
		config: cfg,
		cap:    cap,
		mat:    gocv.NewMat(),
	}, nil
}

// Capture grabs and JPEG-encodes the next frame.
func (w *Webcam) Capture() (vision.Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return vision.Frame{}, ErrClosed
	}

	if ok := w.cap.Read(&w.mat); !ok || w.mat.Empty() {
		return vision.Frame{}, ErrEmptyFrame
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, w.mat,
		[]int{gocv.IMWriteJpegQuality, w.config.JPEGQuality})
	if err != nil {
		return vision.Frame{}, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	jpeg := make([]byte, len(buf.GetBytes()))
	copy(jpeg, buf.GetBytes())

	return vision.Frame{JPEG: jpeg, Timestamp: time.Now()}, nil
}

// Close releases the device and capture buffers.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	w.mat.Close()
	return w.cap.Close()
}

// Verify Webcam implements Source at compile time.
var _ Source = (*Webcam)(nil)
