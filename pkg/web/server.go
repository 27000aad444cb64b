// Package web serves the dashboard: current per-subject emotion state,
// recent alerts, and a calibration reset endpoint, with a websocket push
// stream for live updates.
package web

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/ragelab/go-ragemeter/pkg/dispatch"
	"github.com/ragelab/go-ragemeter/pkg/hub"
	"github.com/ragelab/go-ragemeter/pkg/vision"
)

// Resetter restarts baseline calibration; implemented by the analyzer.
type Resetter interface {
	ResetCalibration()
}

// AlertLog exposes recent alerts; implemented by the dispatcher.
type AlertLog interface {
	History() []dispatch.AlertEvent
}

// Config holds the dashboard server configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// PushInterval is how often state is pushed to websocket clients.
	PushInterval time.Duration

	// Logger receives server logs.
	Logger *slog.Logger
}

// DefaultConfig returns the recommended server configuration.
func DefaultConfig() Config {
	return Config{
		Port:         "8080",
		PushInterval: 250 * time.Millisecond,
		Logger:       slog.Default(),
	}
}

// Server is the dashboard HTTP/websocket server.
type Server struct {
	config Config
	logger *slog.Logger

	app      *fiber.App
	store    *vision.Store
	alerts   AlertLog
	resetter Resetter
	appCfg   any

	stateHub *hub.Hub
}

// NewServer wires the dashboard routes. appCfg is the effective
// application configuration, returned verbatim by /api/config.
func NewServer(cfg Config, store *vision.Store, alerts AlertLog, resetter Resetter, appCfg any) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	s := &Server{
		config:   cfg,
		logger:   cfg.Logger.With("component", "web"),
		store:    store,
		alerts:   alerts,
		resetter: resetter,
		appCfg:   appCfg,
		stateHub: hub.New("state", cfg.Logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Rage Meter Dashboard",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/config", s.handleConfig)
	api.Post("/calibration/reset", s.handleCalibrationReset)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

// Run starts the hub, the push loop and the listener, and shuts the
// server down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go s.stateHub.Run()
	go s.pushLoop(ctx)

	go func() {
		<-ctx.Done()
		s.app.ShutdownWithTimeout(2 * time.Second)
	}()

	s.logger.Info("dashboard listening", "port", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// pushLoop periodically broadcasts the current state to websocket
// clients. Broadcasting an unchanged state is harmless and keeps the
// protocol stateless.
func (s *Server) pushLoop(ctx context.Context) {
	ticker := time.NewTicker(s.config.PushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.stateHub.ClientCount() == 0 {
				continue
			}
			s.stateHub.BroadcastJSON(s.snapshot())
		}
	}
}

// snapshot assembles the state payload shared by /api/state and the
// websocket stream.
func (s *Server) snapshot() stateResponse {
	resp := stateResponse{Alerts: s.alerts.History()}
	if state, ok := s.store.State(); ok {
		resp.Ready = true
		resp.State = &state
	}
	if resp.Alerts == nil {
		resp.Alerts = []dispatch.AlertEvent{}
	}
	return resp
}
