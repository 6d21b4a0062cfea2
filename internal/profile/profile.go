// Package profile reads member availability from the user profile service.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mauv0809/crewboard/internal/availability"
	"github.com/mauv0809/crewboard/internal/config"
)

// ErrNotFound is returned when the profile service does not know the user.
var ErrNotFound = errors.New("user profile not found")

// Client fetches availability for a user.
type Client interface {
	GetAvailability(ctx context.Context, userID string) ([]availability.Interval, error)
}

// intervalDTO is the wire shape of one availability window, e.g. {"day":"WEDNESDAY","start":"14:05","end":"14:06"}.
type intervalDTO struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type httpClient struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

var _ Client = (*httpClient)(nil)

// New creates a Client for the peer described by cfg.
func New(cfg config.PeerConfig) Client {
	return &httpClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		authToken: cfg.AuthToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// GetAvailability calls GET {base}/users/{id}/availability.
func (c *httpClient) GetAvailability(ctx context.Context, userID string) ([]availability.Interval, error) {
	endpoint := fmt.Sprintf("%s/users/%s/availability", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("profile service error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload []intervalDTO
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid availability payload: %w", err)
	}

	intervals := make([]availability.Interval, 0, len(payload))
	for _, dto := range payload {
		interval, err := availability.ParseInterval(dto.Day, dto.Start, dto.End)
		if err != nil {
			return nil, fmt.Errorf("invalid availability for user %s: %w", userID, err)
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}
