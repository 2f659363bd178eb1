// Package profile fetches mentor profiles from the external auth/profile service.
package profile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/mlcinall/mentor-service/config"
	pkgerrors "github.com/mlcinall/mentor-service/pkg/errors"
)

const maxBodySize = 1 << 20

// Profile the fields the profile service exposes for a user.
type Profile struct {
	About         string `json:"about"`
	Specification string `json:"specification"`
	Name          string `json:"name"`
	Telegram      string `json:"telegram"`
}

// Client HTTP client for GET {base_url}/get_user/{id}.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a profile Client
func NewClient(cfg *config.ProfileConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Fetch returns the profile of externalID. Transport failures, non-2xx
// statuses and undecodable bodies all wrap ErrUpstreamUnavailable.
func (c *Client) Fetch(ctx context.Context, externalID string) (*Profile, error) {
	endpoint := c.baseURL + "/get_user/" + url.PathEscape(externalID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("profile service unreachable", zap.String("url", endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("profile service returned error",
			zap.String("url", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.Duration("latency", time.Since(start)),
		)
		return nil, fmt.Errorf("%w: status %d", pkgerrors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %v", pkgerrors.ErrUpstreamUnavailable, err)
	}
	return &p, nil
}
