package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/ragelab/go-ragemeter/pkg/dispatch"
	"github.com/ragelab/go-ragemeter/pkg/hub"
	"github.com/ragelab/go-ragemeter/pkg/vision"
)

// stateResponse is the payload for /api/state and the websocket stream.
type stateResponse struct {
	// Ready is false until the worker has published its first state.
	Ready bool `json:"ready"`

	// State is the latest analysis result, absent before Ready.
	State *vision.State `json:"state,omitempty"`

	// Alerts is the recent alert history, newest first.
	Alerts []dispatch.AlertEvent `json:"alerts"`
}

// handleState returns the current analysis state and recent alerts.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.snapshot())
}

// handleConfig returns the effective application configuration.
func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(s.appCfg)
}

// handleCalibrationReset restarts baseline calibration for both slots.
func (s *Server) handleCalibrationReset(c *fiber.Ctx) error {
	s.resetter.ResetCalibration()
	s.logger.Info("calibration reset requested via dashboard")
	return c.JSON(fiber.Map{"status": "reset"})
}

// handleStateWS registers a websocket client on the state hub and blocks
// until it disconnects.
func (s *Server) handleStateWS(conn *websocket.Conn) {
	client := hub.NewClient(s.stateHub, conn)
	client.Run()
}
