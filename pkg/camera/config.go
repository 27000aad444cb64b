package camera

// Config holds the webcam configuration.
type Config struct {
	// DeviceID is the V4L2 device index.
	DeviceID int

	// Width and Height request a capture resolution; the driver may
	// pick the nearest supported mode.
	Width  int
	Height int

	// JPEGQuality is the encode quality (1-100).
	JPEGQuality int
}

// DefaultConfig returns the recommended webcam configuration.
func DefaultConfig() Config {
	return Config{
		DeviceID:    0,
		Width:       1280,
		Height:      720,
		JPEGQuality: 85,
	}
}
