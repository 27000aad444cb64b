// Hardware tester - exercises the LED ring and the shake/yell signals
//
// Lights the ring, then watches the signal source for 30 seconds and
// flashes on every trigger. Useful for checking wiring before a session.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ragelab/go-ragemeter/internal/config"
	"github.com/ragelab/go-ragemeter/internal/log"
	"github.com/ragelab/go-ragemeter/pkg/hardware"
	"github.com/ragelab/go-ragemeter/pkg/lights"
)

const watchWindow = 30 * time.Second

func main() {
	if err := config.LoadDotenv(); err != nil {
		log.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	log.Init(config.String("LOG_LEVEL", "debug"))
	logger := log.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ringCfg := lights.DefaultNeoPixelConfig()
	ringCfg.Device = config.String("SPI_DEVICE", config.DefaultSPIDev)
	ringCfg.Logger = logger
	ring, err := lights.NewNeoPixel(ringCfg)
	if err != nil {
		logger.Error("LED ring init failed", "error", err)
		os.Exit(1)
	}
	defer ring.Close()

	if err := ring.On(lights.ColorIdle); err != nil {
		logger.Error("LED ring on failed", "error", err)
		os.Exit(1)
	}
	logger.Info("ring lit, watching for triggers", "window", watchWindow)

	serCfg := hardware.DefaultSerialConfig()
	serCfg.Port = config.String("SERIAL_PORT", config.DefaultSerialPort)
	serCfg.Logger = logger
	signals, err := hardware.NewSerialSource(serCfg)
	if err != nil {
		logger.Error("serial signal source failed", "error", err)
		os.Exit(1)
	}
	defer signals.Close()

	deadline := time.After(watchWindow)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	shakes, yells := 0, 0
	for {
		select {
		case <-ctx.Done():
			logger.Info("interrupted", "shakes", shakes, "yells", yells)
			return
		case <-deadline:
			logger.Info("watch window over", "shakes", shakes, "yells", yells)
			return
		case <-ticker.C:
		}

		if signals.CheckShake() {
			shakes++
			logger.Info("shake detected", "count", shakes)
			ring.Flash(lights.ColorAlert)
		}
		if signals.CheckYell() {
			yells++
			logger.Info("yell detected", "count", yells)
			ring.Flash(lights.ColorAlert)
		}
	}
}
