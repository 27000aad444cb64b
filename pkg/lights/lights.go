// Package lights drives the NeoPixel alert ring. Controller calls are
// fire-and-forget: the fast loop never waits on the LEDs, and failures
// are logged by callers rather than propagated.
package lights

// Color is one RGB pixel value.
type Color struct {
	R, G, B uint8
}

// Ring colors used by the application.
var (
	ColorIdle  = Color{R: 0, G: 40, B: 10}
	ColorAlert = Color{R: 255, G: 0, B: 0}
	ColorOff   = Color{}
)

// Controller drives the LED ring.
type Controller interface {
	// On lights the whole ring in the given color.
	On(c Color) error

	// Off blanks the ring.
	Off() error

	// Flash blinks the ring in the given color a few times, returning
	// after the last blink with the ring restored to idle.
	Flash(c Color) error

	// Close blanks the ring and releases the bus.
	Close() error
}
