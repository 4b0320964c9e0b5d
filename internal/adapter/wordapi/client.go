package wordapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/wordtree/internal/domain"
	"github.com/heartmarshall/wordtree/pkg/ctxutil"
)

// DefaultBaseURL is where the word-storage backend listens by default.
const DefaultBaseURL = "http://localhost:8081"

const (
	addPath    = "/api/words/addWord"
	updatePath = "/api/words/update"
	queryPath  = "/api/words/queryWord/"

	requestIDHeader = "X-Request-Id"
	maxBodyBytes    = 8 << 20
)

// Client talks to the word-storage backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. A zero timeout means requests are bounded
// only by their context.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "wordapi"),
	}
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

type wordPayload struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// AddWord stores a new word/meaning pair. Success is signaled by status only.
func (c *Client) AddWord(ctx context.Context, word, meaning string) error {
	return c.mutate(ctx, "add", http.MethodPost, addPath, wordPayload{Word: word, Meaning: meaning})
}

// UpdateWord replaces the meaning of an existing word.
func (c *Client) UpdateWord(ctx context.Context, word, meaning string) error {
	return c.mutate(ctx, "update", http.MethodPut, updatePath, wordPayload{Word: word, Meaning: meaning})
}

func (c *Client) mutate(ctx context.Context, op, method, path string, payload wordPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("wordapi: %s: encode body: %w", op, err)
	}

	req, err := c.newRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("wordapi: %s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.DebugContext(ctx, "wordapi request", slog.String("op", op), slog.String("word", payload.Word))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "wordapi request failed", slog.String("op", op), slog.String("error", err.Error()))
		return fmt.Errorf("wordapi: %s: %w: %w", op, domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("wordapi: %s: %w: unexpected status %d", op, domain.ErrUnavailable, resp.StatusCode)
	}

	c.log.DebugContext(ctx, "wordapi response", slog.String("op", op), slog.Int("status", resp.StatusCode))
	return nil
}

// QueryWord fetches a word with its parent and child relations.
func (c *Client) QueryWord(ctx context.Context, word string) (*domain.QueryResult, error) {
	req, err := c.newRequest(ctx, http.MethodGet, queryPath+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("wordapi: query: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.DebugContext(ctx, "wordapi request", slog.String("op", "query"), slog.String("word", word))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "wordapi request failed", slog.String("op", "query"), slog.String("error", err.Error()))
		return nil, fmt.Errorf("wordapi: query: %w: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	notFoundStatus := resp.StatusCode == http.StatusNotFound
	if !notFoundStatus && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return nil, fmt.Errorf("wordapi: query: %w: unexpected status %d", domain.ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("wordapi: query: %w: read body: %w", domain.ErrUnavailable, err)
	}

	result, err := decodeQuery(body, notFoundStatus)
	if err != nil {
		c.log.WarnContext(ctx, "wordapi malformed response",
			slog.String("word", word),
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("wordapi: query: %w", err)
	}

	c.log.DebugContext(ctx, "wordapi response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Bool("found", !result.NotFound),
	)
	return result, nil
}

// Ping reports whether the backend answers at all. Any status below 500 counts as up.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return fmt.Errorf("wordapi: ping: create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wordapi: ping: %w: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode >= 500 {
		return fmt.Errorf("wordapi: ping: %w: status %d", domain.ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
		req.Header.Set(requestIDHeader, id)
	}
	return req, nil
}
