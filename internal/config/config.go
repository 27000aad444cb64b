// Package config provides environment-backed configuration helpers for the
// rage meter commands. Values come from the process environment, with an
// optional .env file loaded at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the local setup.
const (
	DefaultClassifierURL = "http://127.0.0.1:5005"
	DefaultCameraIndex   = 0
	DefaultWebPort       = "8080"
	DefaultSerialPort    = "/dev/ttyACM0"
	DefaultMQTTBroker    = "tcp://127.0.0.1:1883"
	DefaultSPIDev        = "/dev/spidev0.0"
)

// LoadDotenv loads a .env file if one exists in the working directory.
// Missing files are not an error; a malformed file is.
func LoadDotenv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

// String returns the named env var, or fallback if unset or empty.
func String(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Required returns the named env var or exits with a usage hint.
func Required(key string) string {
	v := os.Getenv(key)
	if v == "" {
		fmt.Fprintf(os.Stderr, "Error: %s environment variable is required\n", key)
		fmt.Fprintf(os.Stderr, "Usage: %s=... go run ./cmd/...\n", key)
		os.Exit(1)
	}
	return v
}

// Int returns the named env var parsed as an int, or fallback.
func Int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Float returns the named env var parsed as a float64, or fallback.
func Float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// Bool returns the named env var parsed as a bool, or fallback.
// Accepts the usual strconv forms (1/0, true/false, ...).
func Bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// Duration returns the named env var parsed as a time.Duration, or fallback.
func Duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
