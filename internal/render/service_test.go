package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"weather-map/internal/providers"
	"weather-map/internal/providers/openstreetmap"
	"weather-map/internal/providers/openweathermap"
	"weather-map/internal/types"
)

// Mock providers for testing

type mockPlaceProvider struct {
	mu       sync.Mutex
	response *openstreetmap.LookupAPIResponse
	err      error
	calls    []types.Coords
	block    bool
}

func (m *mockPlaceProvider) Lookup(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, types.NewCoords(latitude, longitude))
	m.mu.Unlock()
	if m.block {
		<-ctx.Done()
		return nil, providers.NetworkError("openstreetmap", ctx.Err())
	}
	return m.response, m.err
}

type mockWeatherProvider struct {
	mu       sync.Mutex
	response *openweathermap.OneCallAPIResponse
	err      error
	calls    []types.Coords
}

func (m *mockWeatherProvider) GetOneCall(ctx context.Context, latitude, longitude float64) (*openweathermap.OneCallAPIResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, types.NewCoords(latitude, longitude))
	m.mu.Unlock()
	return m.response, m.err
}

type mockTimezones struct {
	loc *time.Location
	err error
}

func (m *mockTimezones) GetTimezone(coords types.Coords) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.loc.String(), nil
}

func (m *mockTimezones) Location(name string, coords types.Coords) (*time.Location, error) {
	return m.loc, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRenderService_Render(t *testing.T) {
	coords := types.NewCoords(40.7, -74.0)

	place := &mockPlaceProvider{
		response: &openstreetmap.LookupAPIResponse{DisplayName: "New York, United States"},
	}
	weather := &mockWeatherProvider{
		response: &openweathermap.OneCallAPIResponse{
			Timezone: "America/New_York",
			Current: openweathermap.CurrentConditions{
				Temp:     ptr(288.15),
				Humidity: ptr(50),
			},
		},
	}
	tz := &mockTimezones{loc: time.FixedZone("America/New_York", -4*3600)}

	svc := NewRenderServiceWithProviders(discardLogger(), place, weather, tz, time.Second)
	page, err := svc.Render(context.Background(), coords)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(place.calls) != 1 || place.calls[0] != coords {
		t.Errorf("place provider calls = %v, want [%v]", place.calls, coords)
	}
	if len(weather.calls) != 1 || weather.calls[0] != coords {
		t.Errorf("weather provider calls = %v, want [%v]", weather.calls, coords)
	}

	if page.DisplayName != "New York,\nUnited States" || page.DisplayRows != 4 {
		t.Errorf("display = %q/%d", page.DisplayName, page.DisplayRows)
	}
	if page.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q, want America/New_York", page.Timezone)
	}
	if page.Temperature != "15.00 °C (59.00 °F)" {
		t.Errorf("Temperature = %q", page.Temperature)
	}
	if page.Humidity != "50 %" {
		t.Errorf("Humidity = %q", page.Humidity)
	}
}

func TestRenderService_Render_PlaceFallback(t *testing.T) {
	tests := []struct {
		name  string
		place *openstreetmap.LookupAPIResponse
	}{
		{name: "no display name", place: &openstreetmap.LookupAPIResponse{}},
		{name: "unable to geocode", place: &openstreetmap.LookupAPIResponse{Error: "Unable to geocode", DisplayName: "ignored"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRenderServiceWithProviders(discardLogger(),
				&mockPlaceProvider{response: tt.place},
				&mockWeatherProvider{response: &openweathermap.OneCallAPIResponse{Timezone: "UTC"}},
				&mockTimezones{loc: time.UTC},
				0,
			)
			page, err := svc.Render(context.Background(), types.NewCoords(-30, -140))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if page.DisplayName != UnknownLocation || page.DisplayRows != MinDisplayRows {
				t.Errorf("display = %q/%d, want fallback", page.DisplayName, page.DisplayRows)
			}
		})
	}
}

func TestRenderService_Render_Errors(t *testing.T) {
	networkErr := providers.NetworkError("openweathermap", errors.New("connection refused"))
	parseErr := providers.ParseError("openstreetmap", errors.New("unexpected EOF"))

	tests := []struct {
		name        string
		coords      types.Coords
		place       *mockPlaceProvider
		weather     *mockWeatherProvider
		wantErr     error
		wantOutcome string
	}{
		{
			name:        "weather network failure",
			coords:      types.NewCoords(10, 10),
			place:       &mockPlaceProvider{response: &openstreetmap.LookupAPIResponse{}},
			weather:     &mockWeatherProvider{err: networkErr},
			wantErr:     providers.ErrNetwork,
			wantOutcome: "network_failure",
		},
		{
			name:        "place parse failure",
			coords:      types.NewCoords(10, 10),
			place:       &mockPlaceProvider{err: parseErr},
			weather:     &mockWeatherProvider{response: &openweathermap.OneCallAPIResponse{}},
			wantErr:     providers.ErrParse,
			wantOutcome: "parse_failure",
		},
		{
			name:        "nil weather payload",
			coords:      types.NewCoords(10, 10),
			place:       &mockPlaceProvider{response: &openstreetmap.LookupAPIResponse{}},
			weather:     &mockWeatherProvider{},
			wantErr:     providers.ErrParse,
			wantOutcome: "parse_failure",
		},
		{
			name:        "place blocked until weather fails",
			coords:      types.NewCoords(10, 10),
			place:       &mockPlaceProvider{block: true},
			weather:     &mockWeatherProvider{err: networkErr},
			wantErr:     providers.ErrNetwork,
			wantOutcome: "network_failure",
		},
		{
			name:    "invalid latitude",
			coords:  types.NewCoords(91, 0),
			place:   &mockPlaceProvider{},
			weather: &mockWeatherProvider{},
			wantErr: types.ErrInvalidLatitude,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRenderServiceWithProviders(discardLogger(), tt.place, tt.weather, &mockTimezones{loc: time.UTC}, 0)
			page, err := svc.Render(context.Background(), tt.coords)
			if err == nil {
				t.Fatalf("Render() = %+v, want error", page)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Render() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantOutcome != "" && Outcome(err) != tt.wantOutcome {
				t.Errorf("Outcome() = %q, want %q", Outcome(err), tt.wantOutcome)
			}
		})
	}
}

func TestRenderService_Render_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewRenderServiceWithProviders(discardLogger(),
		&mockPlaceProvider{block: true},
		&mockWeatherProvider{err: context.Canceled},
		&mockTimezones{loc: time.UTC},
		0,
	)
	_, err := svc.Render(ctx, types.NewCoords(1, 1))
	if Outcome(err) != OutcomeCancelled {
		t.Errorf("Outcome() = %q, want cancelled (err = %v)", Outcome(err), err)
	}
}

func TestRenderService_ResolveTimezone(t *testing.T) {
	coords := types.NewCoords(35.68, 139.69)

	tests := []struct {
		name     string
		tz       *mockTimezones
		weather  *openweathermap.OneCallAPIResponse
		wantName string
		offset   int
	}{
		{
			name:     "resolved by service",
			tz:       &mockTimezones{loc: time.FixedZone("Asia/Tokyo", 9*3600)},
			weather:  &openweathermap.OneCallAPIResponse{},
			wantName: "Asia/Tokyo",
			offset:   9 * 3600,
		},
		{
			name:     "service fails, payload offset used",
			tz:       &mockTimezones{err: errors.New("no timezone")},
			weather:  &openweathermap.OneCallAPIResponse{Timezone: "Mars/Olympus", TimezoneOffset: 3600},
			wantName: "Mars/Olympus",
			offset:   3600,
		},
		{
			name:     "nothing known",
			tz:       &mockTimezones{err: errors.New("no timezone")},
			weather:  &openweathermap.OneCallAPIResponse{},
			wantName: "UTC",
			offset:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &renderService{timezones: tt.tz, logger: discardLogger()}
			name, loc := svc.resolveTimezone(coords, tt.weather)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
			if offset != tt.offset {
				t.Errorf("offset = %d, want %d", offset, tt.offset)
			}
		})
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "success"},
		{"cancelled", context.Canceled, "cancelled"},
		{"network", providers.NetworkError("ipinfo", errors.New("x")), "network_failure"},
		{"status", providers.StatusError("ipinfo", 503, ""), "network_failure"},
		{"parse", providers.ParseError("ipinfo", errors.New("x")), "parse_failure"},
		{"deadline", context.DeadlineExceeded, "network_failure"},
		{"malformed loc", types.ErrMalformedLoc, "parse_failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outcome(tt.err); got != tt.want {
				t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
