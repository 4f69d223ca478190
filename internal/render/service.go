// Package render turns a coordinate into the formatted page fields: place
// name, timezone and current weather with unit conversions.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"weather-map/internal/providers"
	"weather-map/internal/providers/openstreetmap"
	"weather-map/internal/providers/openweathermap"
	"weather-map/internal/timezone"
	"weather-map/internal/types"
)

const (
	OutcomeSuccess   = "success"
	OutcomeCancelled = "cancelled"
)

// Service renders pages for coordinates
type Service interface {
	Render(ctx context.Context, coords types.Coords) (*Page, error)
}

// PlaceProvider reverse geocodes a coordinate
type PlaceProvider interface {
	Lookup(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error)
}

// WeatherProvider fetches current conditions for a coordinate
type WeatherProvider interface {
	GetOneCall(ctx context.Context, latitude, longitude float64) (*openweathermap.OneCallAPIResponse, error)
}

type renderService struct {
	placeProvider   PlaceProvider
	weatherProvider WeatherProvider
	timezones       timezone.Service
	timeout         time.Duration
	logger          *slog.Logger
}

// NewRenderServiceWithProviders creates a render service with custom
// providers. A zero timeout leaves the caller's context deadline alone.
func NewRenderServiceWithProviders(
	logger *slog.Logger,
	placeProvider PlaceProvider,
	weatherProvider WeatherProvider,
	timezones timezone.Service,
	timeout time.Duration,
) Service {
	return &renderService{
		placeProvider:   placeProvider,
		weatherProvider: weatherProvider,
		timezones:       timezones,
		timeout:         timeout,
		logger:          logger.With("component", "render-service"),
	}
}

// Render fetches the place and the weather for coords in parallel and
// formats them. The first failing fetch cancels the other.
func (s *renderService) Render(ctx context.Context, coords types.Coords) (*Page, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		place   *openstreetmap.LookupAPIResponse
		weather *openweathermap.OneCallAPIResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		place, err = s.placeProvider.Lookup(gctx, coords.Latitude, coords.Longitude)
		if err != nil {
			return fmt.Errorf("failed to get place: %w", err)
		}
		if place == nil {
			return providers.ParseError("openstreetmap", errors.New("empty response"))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		weather, err = s.weatherProvider.GetOneCall(gctx, coords.Latitude, coords.Longitude)
		if err != nil {
			return fmt.Errorf("failed to get weather: %w", err)
		}
		if weather == nil {
			return providers.ParseError("openweathermap", errors.New("empty response"))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	displayName := place.DisplayName
	if place.Error != "" {
		s.logger.Debug("no place at coordinates",
			"coords", coords.String(),
			"reason", place.Error,
		)
		displayName = ""
	}

	name, loc := s.resolveTimezone(coords, weather)

	s.logger.Debug("rendered page",
		"coords", coords.String(),
		"timezone", name,
	)

	return newPage(coords, displayName, name, loc, weather.Current), nil
}

// resolveTimezone prefers the zone named by the weather payload and falls
// back to the polygon lookup, then to the payload's fixed UTC offset.
func (s *renderService) resolveTimezone(coords types.Coords, weather *openweathermap.OneCallAPIResponse) (string, *time.Location) {
	if s.timezones != nil {
		loc, err := s.timezones.Location(weather.Timezone, coords)
		if err == nil {
			return loc.String(), loc
		}
		s.logger.Warn("failed to resolve timezone",
			"coords", coords.String(),
			"timezone", weather.Timezone,
			"error", err,
		)
	} else if weather.Timezone != "" {
		if loc, err := time.LoadLocation(weather.Timezone); err == nil {
			return weather.Timezone, loc
		}
	}

	name := weather.Timezone
	if name == "" {
		name = "UTC"
	}
	return name, time.FixedZone(name, weather.TimezoneOffset)
}

// Outcome labels how a render or locate attempt ended
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.Canceled):
		return OutcomeCancelled
	}
	if kind := providers.KindOf(err); kind != 0 {
		return kind.String()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return providers.KindNetwork.String()
	}
	return providers.KindParse.String()
}
