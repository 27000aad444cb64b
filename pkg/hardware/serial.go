package hardware

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.bug.st/serial"
)

// SerialConfig holds the serial signal source configuration.
type SerialConfig struct {
	// Port is the device path, e.g. /dev/ttyACM0.
	Port string

	// BaudRate must match the Arduino sketch.
	BaudRate int

	// SettleDelay is how long to wait after opening the port; opening
	// resets most Arduinos.
	SettleDelay time.Duration

	// Logger receives signal logs.
	Logger *slog.Logger
}

// DefaultSerialConfig returns the recommended serial configuration.
func DefaultSerialConfig() SerialConfig {
	return SerialConfig{
		Port:        "/dev/ttyACM0",
		BaudRate:    9600,
		SettleDelay: 2 * time.Second,
		Logger:      slog.Default(),
	}
}

// SerialSource reads signal lines from an Arduino over a serial port. A
// background goroutine owns the port; reads latch the matching flag.
type SerialSource struct {
	port   serial.Port
	logger *slog.Logger

	shake latch
	yell  latch

	done chan struct{}
}

// NewSerialSource opens the port and starts the reader goroutine.
func NewSerialSource(cfg SerialConfig) (*SerialSource, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Port, err)
	}
	time.Sleep(cfg.SettleDelay)

	s := &SerialSource{
		port:   port,
		logger: cfg.Logger.With("component", "hardware.serial", "port", cfg.Port),
		done:   make(chan struct{}),
	}
	go s.readLoop()

	s.logger.Info("serial signal source connected", "baud", cfg.BaudRate)
	return s, nil
}

func (s *SerialSource) readLoop() {
	defer close(s.done)

	scanner := bufio.NewScanner(s.port)
	for scanner.Scan() {
		s.handleLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		s.logger.Warn("serial reader stopped", "error", err)
	}
}

// handleLine latches the flag matching one protocol line. Unknown lines
// are ignored; the bridge also prints debug output.
func (s *SerialSource) handleLine(line string) {
	switch strings.TrimSpace(line) {
	case lineShake:
		s.shake.Set()
		s.logger.Debug("shake signal received")
	case lineYell:
		s.yell.Set()
		s.logger.Debug("yell signal received")
	case lineReady:
		s.logger.Info("bridge ready")
	}
}

// CheckShake reports and resets the shake flag.
func (s *SerialSource) CheckShake() bool { return s.shake.Take() }

// CheckYell reports and resets the yell flag.
func (s *SerialSource) CheckYell() bool { return s.yell.Take() }

// Close closes the port, which unblocks and ends the reader goroutine.
func (s *SerialSource) Close() error {
	err := s.port.Close()
	<-s.done
	return err
}

// Verify SerialSource implements SignalSource at compile time.
var _ SignalSource = (*SerialSource)(nil)
