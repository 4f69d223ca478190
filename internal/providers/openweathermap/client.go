package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"weather-map/internal/metrics"
	"weather-map/internal/providers"
)

// API Docs: https://openweathermap.org/api/one-call-api
// Sample request: https://api.openweathermap.org/data/2.5/onecall?lon=-107.65&lat=39.11&exclude=&appid=KEY
const (
	baseURL      = "https://api.openweathermap.org/data/2.5/onecall"
	providerName = "openweathermap"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	exclude    string
	logger     *slog.Logger
}

// NewClient creates a One Call client. exclude is passed through verbatim as
// the "exclude" query parameter; empty requests the full payload.
func NewClient(logger *slog.Logger, base, apiKey, exclude string) *Client {
	if base == "" {
		base = baseURL
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    base,
		apiKey:     apiKey,
		exclude:    exclude,
		logger:     logger.With("component", "openweathermap-client"),
	}
}

// GetOneCall fetches current conditions for the given coordinate
func (c *Client) GetOneCall(ctx context.Context, latitude, longitude float64) (_ *OneCallAPIResponse, err error) {
	defer metrics.ObserveFetch(providerName)(&err)

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("exclude", c.exclude)
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching weather forecast",
		"latitude", latitude,
		"longitude", longitude,
		"exclude", c.exclude,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch weather forecast",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil, providers.NetworkError(providerName, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("OpenWeatherMap API returned error",
			"status_code", resp.StatusCode,
			"latitude", latitude,
			"longitude", longitude,
			"response_body", string(body),
		)
		return nil, providers.StatusError(providerName, resp.StatusCode, string(body))
	}

	var apiResp OneCallAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode OpenWeatherMap response",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil, providers.ParseError(providerName, err)
	}

	c.logger.Debug("successfully fetched weather forecast",
		"latitude", latitude,
		"longitude", longitude,
		"timezone", apiResp.Timezone,
	)

	return &apiResp, nil
}
