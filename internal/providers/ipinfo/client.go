package ipinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"weather-map/internal/metrics"
	"weather-map/internal/providers"
)

// API Docs: https://ipinfo.io/developers
// Sample requests:
// - https://ipinfo.io/json (the caller's own address)
// - https://ipinfo.io/8.8.8.8/json
const (
	baseURL      = "https://ipinfo.io"
	providerName = "ipinfo"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *slog.Logger
}

func NewClient(logger *slog.Logger, base, token string) *Client {
	if base == "" {
		base = baseURL
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    base,
		token:      token,
		logger:     logger.With("component", "ipinfo-client"),
	}
}

// Lookup resolves ip to its approximate location. An empty ip asks about the
// address the request originates from.
func (c *Client) Lookup(ctx context.Context, ip string) (_ *LookupAPIResponse, err error) {
	defer metrics.ObserveFetch(providerName)(&err)

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	if ip == "" {
		u = u.JoinPath("json")
	} else {
		u = u.JoinPath(ip, "json")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("fetching visitor location", "ip", ip)

	// Make the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch visitor location", "ip", ip, "error", err)
		return nil, providers.NetworkError(providerName, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("ipinfo API returned error",
			"status_code", resp.StatusCode,
			"ip", ip,
			"response_body", string(body),
		)
		return nil, providers.StatusError(providerName, resp.StatusCode, string(body))
	}

	// Parse the JSON response
	var apiResp LookupAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode ipinfo response", "ip", ip, "error", err)
		return nil, providers.ParseError(providerName, err)
	}

	c.logger.Debug("successfully fetched visitor location",
		"ip", apiResp.IP,
		"loc", apiResp.Loc,
		"city", apiResp.City,
	)

	return &apiResp, nil
}
