package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ragelab/go-ragemeter/internal/httpc"
)

// googleTranslateURL is the unauthenticated Translate TTS endpoint.
const googleTranslateURL = "https://translate.google.com/translate_tts"

// maxPhraseLen is the endpoint's effective per-request text limit. Alert
// phrases are far shorter; longer input is truncated, not chunked.
const maxPhraseLen = 200

// Google synthesizes speech via the Google Translate TTS endpoint. It
// needs no API key and returns MP3 audio.
type Google struct {
	config *Config
	client *http.Client
}

// NewGoogle creates a Google Translate TTS provider.
func NewGoogle(opts ...Option) (*Google, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Google{
		config: cfg,
		client: httpc.NewClient(cfg.Timeout),
	}, nil
}

// Synthesize fetches MP3 audio for the given text.
func (g *Google) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if len(text) > maxPhraseLen {
		text = text[:maxPhraseLen]
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", g.config.Language)
	q.Set("q", text)
	q.Set("textlen", strconv.Itoa(len(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.config.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, WrapError("google", err)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, WrapError("google", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Provider:   "google",
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError("google", fmt.Errorf("read audio: %w", err))
	}

	g.config.Logger.Debug("synthesized phrase",
		"chars", len(text), "bytes", len(audio), "latency", time.Since(start))

	return &AudioResult{
		Audio:     audio,
		Format:    EncodingMP3,
		CharCount: len(text),
		Latency:   time.Since(start),
	}, nil
}

// Health performs a tiny synthesis to verify the endpoint is reachable.
func (g *Google) Health(ctx context.Context) error {
	_, err := g.Synthesize(ctx, "ok")
	return err
}

// Close releases provider resources.
func (g *Google) Close() error {
	g.client.CloseIdleConnections()
	return nil
}

// Verify Google implements Provider at compile time.
var _ Provider = (*Google)(nil)
