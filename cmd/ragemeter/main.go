// Rage Meter - two-subject emotion analysis with roast alerts
//
// Watches a webcam, classifies each subject's emotion against a learned
// neutral baseline, and fires spoken roasts (plus LED flashes) when anger
// or a hardware shake/yell trigger is detected.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ragelab/go-ragemeter/internal/config"
	"github.com/ragelab/go-ragemeter/internal/log"
	"github.com/ragelab/go-ragemeter/pkg/app"
	"github.com/ragelab/go-ragemeter/pkg/camera"
	"github.com/ragelab/go-ragemeter/pkg/classify"
	"github.com/ragelab/go-ragemeter/pkg/dispatch"
	"github.com/ragelab/go-ragemeter/pkg/hardware"
	"github.com/ragelab/go-ragemeter/pkg/lights"
	"github.com/ragelab/go-ragemeter/pkg/render"
	"github.com/ragelab/go-ragemeter/pkg/roast"
	"github.com/ragelab/go-ragemeter/pkg/speaker"
	"github.com/ragelab/go-ragemeter/pkg/tts"
	"github.com/ragelab/go-ragemeter/pkg/vision"
	"github.com/ragelab/go-ragemeter/pkg/vision/detection"
	"github.com/ragelab/go-ragemeter/pkg/web"
)

// effectiveConfig is what /api/config reports.
type effectiveConfig struct {
	Capture  app.Config      `json:"capture"`
	Vision   vision.Config   `json:"vision"`
	Dispatch dispatch.Config `json:"dispatch"`
	WebPort  string          `json:"web_port"`
}

func main() {
	if err := config.LoadDotenv(); err != nil {
		log.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	log.Init(config.String("LOG_LEVEL", "info"))
	logger := log.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Camera: fatal when unavailable, there is nothing to analyze.
	camCfg := camera.DefaultConfig()
	camCfg.DeviceID = config.Int("CAMERA_INDEX", config.DefaultCameraIndex)
	cam, err := camera.NewWebcam(camCfg)
	if err != nil {
		logger.Error("camera unavailable", "error", err)
		os.Exit(1)
	}
	defer cam.Close()

	// Face detector: fatal, the model file must be present.
	detCfg := detection.DefaultConfig()
	detCfg.ModelPath = config.String("FACE_MODEL_PATH", detCfg.ModelPath)
	det, err := detection.NewYuNet(detCfg)
	if err != nil {
		logger.Error("face detector init failed", "error", err)
		os.Exit(1)
	}
	defer det.Close()

	// Emotion classifier sidecar: fatal when unreachable at startup;
	// per-cycle failures later are tolerated.
	cls, err := classify.NewClient(
		classify.WithBaseURL(config.String("CLASSIFIER_URL", config.DefaultClassifierURL)),
		classify.WithLogger(logger),
	)
	if err != nil {
		logger.Error("classifier client init failed", "error", err)
		os.Exit(1)
	}
	defer cls.Close()

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = cls.Health(healthCtx)
	cancel()
	if err != nil {
		logger.Error("classifier sidecar unreachable", "error", err)
		os.Exit(1)
	}

	visCfg := vision.DefaultConfig()
	visCfg.Interval = config.Duration("ANALYZE_INTERVAL", visCfg.Interval)
	visCfg.Emotion.SamplesNeeded = config.Int("CALIBRATION_SAMPLES", visCfg.Emotion.SamplesNeeded)
	visCfg.Emotion.RemapFearToAngry = config.Bool("REMAP_FEAR_TO_ANGRY", visCfg.Emotion.RemapFearToAngry)

	store := vision.NewStore()
	analyzer := vision.NewAnalyzer(visCfg, store, det, cls, logger)

	dispCfg := dispatch.DefaultConfig()
	dispCfg.HardwareCooldown = config.Duration("HARDWARE_COOLDOWN", dispCfg.HardwareCooldown)
	dispCfg.PlayerCooldown = config.Duration("PLAYER_COOLDOWN", dispCfg.PlayerCooldown)
	dispatcher := dispatch.New(dispCfg, logger)

	// Hardware signals degrade to an inert source: the pipeline still
	// works without the Arduino bridge.
	signals := openSignals(logger)
	defer signals.Close()

	ring := openLights(logger)
	defer ring.Close()

	provider, err := tts.NewGoogle(
		tts.WithLanguage(config.String("TTS_LANGUAGE", "en")),
		tts.WithLogger(logger),
	)
	if err != nil {
		logger.Error("tts init failed", "error", err)
		os.Exit(1)
	}
	spkCfg := speaker.DefaultConfig()
	spkCfg.Logger = logger
	spk, err := speaker.NewPlayer(spkCfg, provider)
	if err != nil {
		logger.Error("speaker init failed", "error", err)
		os.Exit(1)
	}
	defer spk.Close()

	var renderer render.Renderer
	if !config.Bool("HEADLESS", false) {
		win := render.NewWindow("Rage Meter - q quits, r resets calibration")
		defer win.Close()
		renderer = win
	}

	appCfg := app.DefaultConfig()
	appCfg.CaptureInterval = config.Duration("CAPTURE_INTERVAL", appCfg.CaptureInterval)

	webCfg := web.DefaultConfig()
	webCfg.Port = config.String("WEB_PORT", config.DefaultWebPort)
	webCfg.Logger = logger
	srv := web.NewServer(webCfg, store, dispatcher, analyzer, effectiveConfig{
		Capture:  appCfg,
		Vision:   visCfg,
		Dispatch: dispCfg,
		WebPort:  webCfg.Port,
	})
	go func() {
		if err := srv.Run(ctx); err != nil {
			logger.Error("dashboard stopped", "error", err)
		}
	}()

	a := app.New(appCfg, app.Components{
		Camera:     cam,
		Store:      store,
		Analyzer:   analyzer,
		Signals:    signals,
		Dispatcher: dispatcher,
		Roasts:     roast.NewRegistry(),
		Speaker:    spk,
		Lights:     ring,
		Renderer:   renderer,
		Logger:     logger,
	})
	if err := a.Run(ctx); err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
}

// openSignals picks the hardware signal transport from the environment.
// Failures are downgraded to an inert source so the vision pipeline can
// run without the bridge.
func openSignals(logger *slog.Logger) hardware.SignalSource {
	switch config.String("SIGNAL_SOURCE", "serial") {
	case "none":
		logger.Info("hardware signals disabled")
		return &hardware.Mock{}
	case "mqtt":
		cfg := hardware.DefaultMQTTConfig()
		cfg.Broker = config.String("MQTT_BROKER", config.DefaultMQTTBroker)
		cfg.Topic = config.String("MQTT_TOPIC", cfg.Topic)
		cfg.Username = config.String("MQTT_USERNAME", "")
		cfg.Password = config.String("MQTT_PASSWORD", "")
		cfg.Logger = logger
		src, err := hardware.NewMQTTSource(cfg)
		if err != nil {
			logger.Warn("MQTT signals unavailable, continuing without", "error", err)
			return &hardware.Mock{}
		}
		return src
	default:
		cfg := hardware.DefaultSerialConfig()
		cfg.Port = config.String("SERIAL_PORT", config.DefaultSerialPort)
		cfg.BaudRate = config.Int("SERIAL_BAUD", cfg.BaudRate)
		cfg.Logger = logger
		src, err := hardware.NewSerialSource(cfg)
		if err != nil {
			logger.Warn("serial signals unavailable, continuing without", "error", err)
			return &hardware.Mock{}
		}
		return src
	}
}

// openLights opens the LED ring, downgrading to a no-op controller when
// the SPI device is missing (development machines).
func openLights(logger *slog.Logger) lights.Controller {
	cfg := lights.DefaultNeoPixelConfig()
	cfg.Device = config.String("SPI_DEVICE", config.DefaultSPIDev)
	cfg.Pixels = config.Int("LED_PIXELS", cfg.Pixels)
	cfg.Logger = logger
	ring, err := lights.NewNeoPixel(cfg)
	if err != nil {
		logger.Warn("LED ring unavailable, continuing without", "error", err)
		return &lights.Mock{}
	}
	return ring
}
