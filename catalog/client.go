// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Client fetches the sound list from a soundboard server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
	}
}

// Fetch returns the catalog. Malformed entries are logged and dropped.
func (c *Client) Fetch(ctx context.Context) ([]Sound, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/sounds", nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var raw []Sound
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	return lo.Filter(raw, func(s Sound, i int) bool {
		if err := s.Validate(); err != nil {
			c.Logger.Warn("Dropping malformed catalog entry",
				zap.Int("index", i), zap.String("name", s.Name), zap.Error(err))
			return false
		}
		return true
	}), nil
}
