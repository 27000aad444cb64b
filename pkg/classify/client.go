package classify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ragelab/go-ragemeter/internal/httpc"
	"github.com/ragelab/go-ragemeter/pkg/emotion"
	"github.com/ragelab/go-ragemeter/pkg/vision/detection"
)

const providerClient = "client"

// Client is the HTTP-based classifier for a DeepFace-serve style sidecar.
type Client struct {
	baseURL string
	config  *Config
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a new classifier client.
func NewClient(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		config:  cfg,
		http:    httpc.NewClient(cfg.Timeout),
		logger:  cfg.Logger.With("component", "classify.client"),
	}, nil
}

// analyzeRequest is the wire format the sidecar accepts.
type analyzeRequest struct {
	Image   string        `json:"image"` // base64 JPEG
	Region  analyzeRegion `json:"region"`
	Padding int           `json:"padding"`
}

type analyzeRegion struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type analyzeResponse struct {
	Emotions map[string]float64 `json:"emotion"`
	Error    string             `json:"error,omitempty"`
}

// Classify scores the face at region in the JPEG frame.
func (c *Client) Classify(ctx context.Context, jpeg []byte, region detection.Region) (emotion.Vector, error) {
	start := time.Now()

	payload := analyzeRequest{
		Image: base64.StdEncoding.EncodeToString(jpeg),
		Region: analyzeRegion{
			X: region.X, Y: region.Y, W: region.W, H: region.H,
		},
		Padding: c.config.RegionPadding,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(providerClient, fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(providerClient, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, WrapError(providerClient, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, WrapError(providerClient, ErrNoFace)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, WrapError(providerClient, fmt.Errorf("decode response: %w", err))
	}
	if len(result.Emotions) == 0 {
		return nil, WrapError(providerClient, ErrNoFace)
	}

	scores := make(emotion.Vector, len(result.Emotions))
	for label, score := range result.Emotions {
		scores[emotion.Label(strings.ToLower(label))] = score
	}

	c.logger.Debug("classified face",
		"latency_ms", time.Since(start).Milliseconds(),
		"channels", len(scores))

	return scores, nil
}

// Health checks that the scoring service responds.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return WrapError(providerClient, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return WrapError(providerClient, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}
	return nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// parseError converts a non-200 response into an APIError.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiResp analyzeResponse
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != "" {
		msg = apiResp.Error
	}

	return WrapError(providerClient, &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
	})
}

// Verify Client implements Classifier at compile time.
var _ Classifier = (*Client)(nil)
