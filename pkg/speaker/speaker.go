// Package speaker plays synthesized speech through a local audio player
// child process. Playback is deliberately blocking: the fast loop relies
// on Speak not returning until the phrase has finished, which spaces out
// alerts even before the dispatcher's cooldowns are consulted again.
package speaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/ragelab/go-ragemeter/pkg/tts"
)

// ErrNoPlayerCommand is returned when the player command is empty.
var ErrNoPlayerCommand = errors.New("speaker: player command required")

// Speaker converts text to audio and plays it to completion.
type Speaker interface {
	// Speak synthesizes and plays text, blocking until playback ends.
	Speak(ctx context.Context, text string) error

	// Close releases the underlying synthesis provider.
	Close() error
}

// Config holds the player configuration.
type Config struct {
	// Command is the audio player invocation; audio bytes are written to
	// its stdin. The default plays MP3 from a pipe.
	Command []string

	// Logger receives playback logs.
	Logger *slog.Logger
}

// DefaultConfig returns the recommended player configuration.
func DefaultConfig() Config {
	return Config{
		Command: []string{"mpg123", "-q", "-"},
		Logger:  slog.Default(),
	}
}

// Player synthesizes via a tts.Provider and pipes the audio into the
// configured player process, waiting for it to exit.
type Player struct {
	config   Config
	provider tts.Provider
	logger   *slog.Logger
}

// NewPlayer creates a blocking speaker on top of the given provider.
func NewPlayer(cfg Config, provider tts.Provider) (*Player, error) {
	if len(cfg.Command) == 0 {
		return nil, ErrNoPlayerCommand
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Player{
		config:   cfg,
		provider: provider,
		logger:   cfg.Logger.With("component", "speaker"),
	}, nil
}

// Speak synthesizes text and plays it, returning once the player process
// exits. Cancelling ctx kills playback.
func (p *Player) Speak(ctx context.Context, text string) error {
	result, err := p.provider.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	cmd := exec.CommandContext(ctx, p.config.Command[0], p.config.Command[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}

	if _, err := stdin.Write(result.Audio); err != nil {
		stdin.Close()
		cmd.Wait()
		return fmt.Errorf("write audio: %w", err)
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	p.logger.Debug("phrase played", "chars", result.CharCount, "bytes", len(result.Audio))
	return nil
}

// Close releases the synthesis provider.
func (p *Player) Close() error {
	return p.provider.Close()
}

// Verify Player implements Speaker at compile time.
var _ Speaker = (*Player)(nil)
