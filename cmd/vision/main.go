// Vision tester - camera, detection and classification without alerts
//
// Runs the full analysis pipeline against the webcam and shows the
// overlay window. No roasts, no hardware, no dashboard. Press r to reset
// calibration, q to quit.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ragelab/go-ragemeter/internal/config"
	"github.com/ragelab/go-ragemeter/internal/log"
	"github.com/ragelab/go-ragemeter/pkg/camera"
	"github.com/ragelab/go-ragemeter/pkg/classify"
	"github.com/ragelab/go-ragemeter/pkg/render"
	"github.com/ragelab/go-ragemeter/pkg/vision"
	"github.com/ragelab/go-ragemeter/pkg/vision/detection"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		log.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	log.Init(config.String("LOG_LEVEL", "debug"))
	logger := log.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	camCfg := camera.DefaultConfig()
	camCfg.DeviceID = config.Int("CAMERA_INDEX", config.DefaultCameraIndex)
	cam, err := camera.NewWebcam(camCfg)
	if err != nil {
		logger.Error("camera unavailable", "error", err)
		os.Exit(1)
	}
	defer cam.Close()

	detCfg := detection.DefaultConfig()
	detCfg.ModelPath = config.String("FACE_MODEL_PATH", detCfg.ModelPath)
	det, err := detection.NewYuNet(detCfg)
	if err != nil {
		logger.Error("face detector init failed", "error", err)
		os.Exit(1)
	}
	defer det.Close()

	cls, err := classify.NewClient(
		classify.WithBaseURL(config.String("CLASSIFIER_URL", config.DefaultClassifierURL)),
		classify.WithLogger(logger),
	)
	if err != nil {
		logger.Error("classifier client init failed", "error", err)
		os.Exit(1)
	}
	defer cls.Close()

	store := vision.NewStore()
	analyzer := vision.NewAnalyzer(vision.DefaultConfig(), store, det, cls, logger)
	go analyzer.Run(ctx)

	win := render.NewWindow("Vision Tester - q quits, r resets calibration")
	defer win.Close()

	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frame, err := cam.Capture()
		if err != nil {
			logger.Warn("frame capture failed", "error", err)
			continue
		}
		store.PublishFrame(frame)

		state, _ := store.State()
		key, err := win.Draw(frame, state)
		if err != nil {
			logger.Warn("render failed", "error", err)
			continue
		}
		switch key {
		case render.KeyQuit:
			return
		case render.KeyReset:
			analyzer.ResetCalibration()
		}
	}
}
