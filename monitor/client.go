// Package monitor fetches annual price and emission-factor series from an
// energy data monitor over HTTP, optionally behind OAuth2 client
// credentials.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flexworks/co2flex/core/model"
	"github.com/flexworks/co2flex/infra/logger"
)

// Config holds the monitor endpoint settings.
type Config struct {
	BaseURL        string   `json:"base_url"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	Auth           AuthConf `json:"auth"`
}

// Client downloads annual series from the configured monitor.
type Client struct {
	http    *http.Client
	baseURL string
	auth    *ClientCred
	log     logger.Logger
}

// New creates a monitor client. Authentication is attached only when the
// config carries a token URL.
func New(cfg Config) *Client {
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
	c := &Client{
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		baseURL: cfg.BaseURL,
		log:     logger.New("monitor-client"),
	}
	if cfg.Auth.enabled() {
		c.auth = NewClientCred(cfg.Auth)
	}
	return c
}

// seriesResponse is the wire layout of the monitor's series endpoint.
type seriesResponse struct {
	Year   int `json:"year"`
	Points []struct {
		Price float64 `json:"price"`
		EMF   float64 `json:"emission_factor"`
	} `json:"points"`
}

// FetchYear downloads the quarter-hour series of one year.
func (c *Client) FetchYear(ctx context.Context, year int) ([]model.SeriesPoint, error) {
	url := fmt.Sprintf("%s/series/%d", c.baseURL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.auth != nil {
		if err := c.auth.SetAuthHeader(ctx, req); err != nil {
			return nil, fmt.Errorf("failed to set auth header: %w", err)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var sr seriesResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if sr.Year != 0 && sr.Year != year {
		return nil, fmt.Errorf("monitor returned year %d, requested %d", sr.Year, year)
	}

	series := make([]model.SeriesPoint, len(sr.Points))
	for i, p := range sr.Points {
		series[i] = model.SeriesPoint{Price: p.Price, EMF: p.EMF}
	}
	c.log.Infof("fetched %d points for %d from %s", len(series), year, c.baseURL)
	return series, nil
}
