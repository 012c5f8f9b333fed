package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds connection settings for the hosted backend.
type Config struct {
	BaseURL string
	Token   string

	// RequestDelay throttles successive calls to stay under rate limits.
	RequestDelay time.Duration
}

// Client fetches the user's library from the hosted backend.
type Client interface {
	// FetchLibrary returns all deadlines and progress snapshots, limited to
	// records updated after since when since is non-zero.
	FetchLibrary(since time.Time) (*SyncResponse, error)
}

// NewClient creates a backend client from the configuration.
func NewClient(cfg Config) Client {
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type httpClient struct {
	cfg         Config
	http        *http.Client
	lastRequest time.Time
}

func (c *httpClient) FetchLibrary(since time.Time) (*SyncResponse, error) {
	if c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend URL is not configured")
	}

	c.throttle()

	endpoint := fmt.Sprintf("%s/rest/v1/library", c.cfg.BaseURL)
	if !since.IsZero() {
		endpoint += "?updated_since=" + url.QueryEscape(since.UTC().Format(time.RFC3339))
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build library request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	log.Debug().Str("endpoint", endpoint).Msg("Fetching library from backend")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("library request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("backend returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var sync SyncResponse
	if err := json.NewDecoder(resp.Body).Decode(&sync); err != nil {
		return nil, fmt.Errorf("failed to decode library response: %w", err)
	}
	return &sync, nil
}

func (c *httpClient) throttle() {
	if c.cfg.RequestDelay <= 0 {
		return
	}
	if elapsed := time.Since(c.lastRequest); elapsed < c.cfg.RequestDelay {
		time.Sleep(c.cfg.RequestDelay - elapsed)
	}
	c.lastRequest = time.Now()
}
