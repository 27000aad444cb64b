// Package tts provides a unified interface for text-to-speech providers.
//
// The production backend is the Google Translate TTS endpoint (no API key,
// MP3 output), matching what the alert pipeline needs: short phrases,
// synthesized on demand. All providers implement the Provider interface so
// callers can swap in a test double at construction.
package tts

import (
	"context"
	"time"
)

// Provider defines the TTS provider interface.
type Provider interface {
	// Synthesize converts text to audio, returning the complete audio
	// buffer. Alert phrases are short, so there is no streaming variant.
	Synthesize(ctx context.Context, text string) (*AudioResult, error)

	// Health checks provider connectivity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// AudioResult represents a complete audio synthesis result.
type AudioResult struct {
	// Audio contains the raw audio data in the specified format.
	Audio []byte

	// Format describes the audio encoding.
	Format Encoding

	// CharCount is the number of characters synthesized.
	CharCount int

	// Latency is the time the provider took to respond.
	Latency time.Duration
}

// Encoding represents audio encoding types.
type Encoding string

const (
	EncodingMP3   Encoding = "mp3"
	EncodingPCM16 Encoding = "pcm_s16le"
)
