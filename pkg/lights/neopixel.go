package lights

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// NeoPixelConfig holds the SPI LED ring configuration.
type NeoPixelConfig struct {
	// Device is the SPI port name, e.g. /dev/spidev0.0.
	Device string

	// Pixels is the ring length.
	Pixels int

	// FlashCount and FlashInterval shape the alert blink.
	FlashCount    int
	FlashInterval time.Duration

	// Logger receives ring logs.
	Logger *slog.Logger
}

// DefaultNeoPixelConfig returns the recommended ring configuration.
func DefaultNeoPixelConfig() NeoPixelConfig {
	return NeoPixelConfig{
		Device:        "/dev/spidev0.0",
		Pixels:        12,
		FlashCount:    3,
		FlashInterval: 150 * time.Millisecond,
		Logger:        slog.Default(),
	}
}

// ws2812Freq makes each WS2812 bit three SPI bits wide, so 0b100 and
// 0b110 land inside the chip's timing windows.
const ws2812Freq = 2400 * physic.KiloHertz

// NeoPixel drives a WS2812 ring over SPI.
type NeoPixel struct {
	config NeoPixelConfig
	logger *slog.Logger

	mu     sync.Mutex
	port   spi.PortCloser
	conn   spi.Conn
	closed bool
}

// NewNeoPixel initializes the host drivers and opens the SPI port.
func NewNeoPixel(cfg NeoPixelConfig) (*NeoPixel, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	port, err := spireg.Open(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	conn, err := port.Connect(ws2812Freq, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("connect %s: %w", cfg.Device, err)
	}

	n := &NeoPixel{
		config: cfg,
		logger: cfg.Logger.With("component", "lights", "device", cfg.Device),
		port:   port,
		conn:   conn,
	}
	n.logger.Info("LED ring initialized", "pixels", cfg.Pixels)
	return n, nil
}

// On lights the whole ring in the given color.
func (n *NeoPixel) On(c Color) error {
	return n.write(c)
}

// Off blanks the ring.
func (n *NeoPixel) Off() error {
	return n.write(ColorOff)
}

// Flash blinks the ring, then leaves it in the idle color.
func (n *NeoPixel) Flash(c Color) error {
	for i := 0; i < n.config.FlashCount; i++ {
		if err := n.write(c); err != nil {
			return err
		}
		time.Sleep(n.config.FlashInterval)
		if err := n.write(ColorOff); err != nil {
			return err
		}
		time.Sleep(n.config.FlashInterval)
	}
	return n.write(ColorIdle)
}

// write pushes one full frame to the ring.
func (n *NeoPixel) write(c Color) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}

	frame := encodeFrame(c, n.config.Pixels)
	if err := n.conn.Tx(frame, nil); err != nil {
		return fmt.Errorf("spi tx: %w", err)
	}
	return nil
}

// Close blanks the ring and releases the port.
func (n *NeoPixel) Close() error {
	n.write(ColorOff)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	return n.port.Close()
}

// encodeFrame expands pixel colors into the SPI bitstream: every WS2812
// bit becomes three SPI bits (0 → 100, 1 → 110), GRB channel order, with
// trailing zero bytes as the latch gap.
func encodeFrame(c Color, pixels int) []byte {
	// 8 color bits * 3 channels * 3 SPI bits = 9 bytes per pixel.
	out := make([]byte, 0, pixels*9+15)
	for i := 0; i < pixels; i++ {
		out = appendChannel(out, c.G)
		out = appendChannel(out, c.R)
		out = appendChannel(out, c.B)
	}
	return append(out, make([]byte, 15)...)
}

func appendChannel(out []byte, v uint8) []byte {
	var bits uint32
	for i := 7; i >= 0; i-- {
		if v&(1<<i) != 0 {
			bits = bits<<3 | 0b110
		} else {
			bits = bits<<3 | 0b100
		}
	}
	return append(out, byte(bits>>16), byte(bits>>8), byte(bits))
}

// Verify NeoPixel implements Controller at compile time.
var _ Controller = (*NeoPixel)(nil)
