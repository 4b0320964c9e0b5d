package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/wordtree/internal/domain"
	"github.com/heartmarshall/wordtree/pkg/ctxutil"
)

// ErrDisabled is returned when no text-to-speech endpoint is configured.
var ErrDisabled = errors.New("speech: not configured")

const maxAudioBytes = 32 << 20

// Voice holds the synthesis parameters sent with every request.
type Voice struct {
	Name    string
	Rate    string
	Pitch   string
	Preview bool
}

// Client fetches synthesized speech from a text-to-speech service.
type Client struct {
	url        string
	voice      Voice
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. An empty url yields a client whose
// Synthesize always fails with ErrDisabled.
func NewClient(url string, voice Voice, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:        url,
		voice:      voice,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "speech"),
	}
}

// Enabled reports whether a service URL is configured.
func (c *Client) Enabled() bool { return c.url != "" }

type synthRequest struct {
	Text    string `json:"text"`
	Voice   string `json:"voice"`
	Rate    string `json:"rate"`
	Pitch   string `json:"pitch"`
	Preview bool   `json:"preview"`
}

// Synthesize sends text verbatim and returns the audio stream.
func (c *Client) Synthesize(ctx context.Context, text string) (*domain.Clip, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	body, err := json.Marshal(synthRequest{
		Text:    text,
		Voice:   c.voice.Name,
		Rate:    c.voice.Rate,
		Pitch:   c.voice.Pitch,
		Preview: c.voice.Preview,
	})
	if err != nil {
		return nil, fmt.Errorf("speech: encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("speech: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	c.log.DebugContext(ctx, "speech request", slog.String("text", text), slog.String("voice", c.voice.Name))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "speech request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("speech: %w: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech: %w: unexpected status %d", domain.ErrUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, fmt.Errorf("speech: read body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("speech: %w: empty audio stream", domain.ErrMalformedResponse)
	}

	c.log.DebugContext(ctx, "speech response",
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(data)),
	)

	return &domain.Clip{
		Text:        text,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// Ping reports whether the speech service answers. Any status below 500
// counts as up.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url, nil)
	if err != nil {
		return fmt.Errorf("speech: ping: create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("speech: ping: %w: %w", domain.ErrUnavailable, err)
	}
	resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("speech: ping: %w: status %d", domain.ErrUnavailable, resp.StatusCode)
	}
	return nil
}
