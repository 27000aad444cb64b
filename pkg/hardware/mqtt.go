package hardware

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig holds the MQTT signal source configuration.
type MQTTConfig struct {
	// Broker is the broker URL, e.g. tcp://127.0.0.1:1883.
	Broker string

	// ClientID identifies this subscriber to the broker.
	ClientID string

	// Topic carries the bridge's signal lines as message payloads.
	Topic string

	// Optional broker credentials.
	Username string
	Password string

	// ConnectTimeout bounds the initial connect.
	ConnectTimeout time.Duration

	// Logger receives signal logs.
	Logger *slog.Logger
}

// DefaultMQTTConfig returns the recommended MQTT configuration.
func DefaultMQTTConfig() MQTTConfig {
	return MQTTConfig{
		Broker:         "tcp://127.0.0.1:1883",
		ClientID:       "ragemeter-signals",
		Topic:          "ragemeter/signals",
		ConnectTimeout: 10 * time.Second,
		Logger:         slog.Default(),
	}
}

// MQTTSource latches signals published by a networked bridge (an ESP32
// sketch publishing the same SHAKE/YELL lines the serial bridge prints).
type MQTTSource struct {
	client mqtt.Client
	logger *slog.Logger

	shake latch
	yell  latch
}

// NewMQTTSource connects to the broker and subscribes to the signal
// topic. Connection loss is retried by the client; signals published
// while disconnected are dropped, matching the serial source's behavior
// when unplugged.
func NewMQTTSource(cfg MQTTConfig) (*MQTTSource, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &MQTTSource{
		logger: cfg.Logger.With("component", "hardware.mqtt", "broker", cfg.Broker),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectTimeout(cfg.ConnectTimeout)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		s.logger.Warn("broker connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		token := client.Subscribe(cfg.Topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
			s.handlePayload(string(msg.Payload()))
		})
		if token.Wait() && token.Error() != nil {
			s.logger.Error("subscribe failed", "topic", cfg.Topic, "error", token.Error())
			return
		}
		s.logger.Info("subscribed to signal topic", "topic", cfg.Topic)
	})

	s.client = mqtt.NewClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to broker %s: %w", cfg.Broker, token.Error())
	}

	return s, nil
}

func (s *MQTTSource) handlePayload(payload string) {
	switch strings.TrimSpace(payload) {
	case lineShake:
		s.shake.Set()
		s.logger.Debug("shake signal received")
	case lineYell:
		s.yell.Set()
		s.logger.Debug("yell signal received")
	}
}

// CheckShake reports and resets the shake flag.
func (s *MQTTSource) CheckShake() bool { return s.shake.Take() }

// CheckYell reports and resets the yell flag.
func (s *MQTTSource) CheckYell() bool { return s.yell.Take() }

// Close disconnects from the broker.
func (s *MQTTSource) Close() error {
	s.client.Disconnect(250)
	return nil
}

// Verify MQTTSource implements SignalSource at compile time.
var _ SignalSource = (*MQTTSource)(nil)
