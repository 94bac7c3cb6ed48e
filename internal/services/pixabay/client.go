// Package pixabay finds background music for a video via the Pixabay audio
// API. Music is best-effort: every failure degrades to a known default track
// instead of failing the plan.
package pixabay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BigBrown10/director-v2/internal/logging"
)

const defaultTimeout = 15 * time.Second

// Config captures the runtime settings for music search.
type Config struct {
	APIKey          string
	BaseURL         string
	DefaultTrackURL string
	TimeoutSeconds  int
}

// Client queries the audio search API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a music search client.
func NewClient(cfg Config, logger *slog.Logger, opts ...Option) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:          strings.TrimSpace(cfg.APIKey),
			BaseURL:         strings.TrimSpace(cfg.BaseURL),
			DefaultTrackURL: strings.TrimSpace(cfg.DefaultTrackURL),
			TimeoutSeconds:  cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewComponentLogger(logger, "pixabay"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type searchResponse struct {
	Hits []struct {
		Audio    string `json:"audio"`
		Preview  string `json:"previewURL"`
		Download string `json:"downloadURL"`
	} `json:"hits"`
}

// FindTrack searches for a track matching the mood keywords and returns its
// playable URL. It never returns an error: missing key, transport failures,
// and empty result sets all fall back to the configured default track.
func (c *Client) FindTrack(ctx context.Context, keywords []string) string {
	query := strings.TrimSpace(strings.Join(keywords, " "))
	if c.cfg.APIKey == "" || c.cfg.BaseURL == "" || query == "" {
		return c.cfg.DefaultTrackURL
	}

	trackURL, err := c.search(ctx, query)
	if err != nil {
		c.logger.Warn("music search failed, using default track",
			logging.String("query", query),
			logging.Error(err))
		return c.cfg.DefaultTrackURL
	}
	if trackURL == "" {
		c.logger.Debug("music search returned no hits, using default track",
			logging.String("query", query))
		return c.cfg.DefaultTrackURL
	}
	return trackURL
}

func (c *Client) search(ctx context.Context, query string) (string, error) {
	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	params := endpoint.Query()
	params.Set("key", c.cfg.APIKey)
	params.Set("q", query)
	params.Set("per_page", "5")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	for _, hit := range parsed.Hits {
		for _, candidate := range []string{hit.Audio, hit.Download, hit.Preview} {
			if trimmed := strings.TrimSpace(candidate); trimmed != "" {
				return trimmed, nil
			}
		}
	}
	return "", nil
}
