package location

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"weather-map/internal/providers"
	"weather-map/internal/providers/ipinfo"
	"weather-map/internal/types"
)

// Service resolves where a visitor approximately is
type Service interface {
	// Locate returns the coordinates for the visitor at ip. An empty or
	// non-public ip resolves the address the service itself egresses from.
	Locate(ctx context.Context, ip string) (types.Coords, error)
}

// VisitorLocationProvider fetches the raw record from an IP geolocation API
type VisitorLocationProvider interface {
	Lookup(ctx context.Context, ip string) (*ipinfo.LookupAPIResponse, error)
}

// OfflineLocator resolves coordinates from a local database
type OfflineLocator interface {
	Locate(ctx context.Context, ip string) (types.Coords, error)
}

type locationService struct {
	visitorProvider VisitorLocationProvider
	offlineLocator  OfflineLocator
	logger          *slog.Logger
}

// NewLocationService creates a location service backed by ipinfo.io
func NewLocationService(logger *slog.Logger, base, token string) Service {
	return NewLocationServiceWithProviders(logger, ipinfo.NewClient(logger, base, token), nil)
}

// NewLocationServiceWithProviders creates a location service with custom
// providers. offline may be nil; when set it is consulted before the API.
func NewLocationServiceWithProviders(
	logger *slog.Logger,
	visitorProvider VisitorLocationProvider,
	offline OfflineLocator,
) Service {
	return &locationService{
		visitorProvider: visitorProvider,
		offlineLocator:  offline,
		logger:          logger.With("component", "location-service"),
	}
}

func (s *locationService) Locate(ctx context.Context, ip string) (types.Coords, error) {
	ip = publicHost(ip)

	if s.offlineLocator != nil && ip != "" {
		coords, err := s.offlineLocator.Locate(ctx, ip)
		if err == nil {
			s.logger.Debug("resolved visitor from local database", "ip", ip, "coords", coords)
			return coords, nil
		}
		s.logger.Debug("local database miss, asking ipinfo", "ip", ip, "error", err)
	}

	record, err := s.visitorProvider.Lookup(ctx, ip)
	if err != nil {
		return types.Coords{}, fmt.Errorf("failed to get visitor location: %w", err)
	}
	if record == nil {
		return types.Coords{}, fmt.Errorf("failed to get visitor location: %w",
			providers.ParseError("ipinfo", fmt.Errorf("visitor location response is nil")))
	}

	// The API answers "lat,lon"; the map wants lon/lat
	coords, err := types.ParseLatLon(record.Loc)
	if err != nil {
		s.logger.Warn("visitor location is malformed", "ip", ip, "loc", record.Loc, "bogon", record.Bogon)
		return types.Coords{}, fmt.Errorf("failed to parse visitor location: %w", providers.ParseError("ipinfo", err))
	}

	s.logger.Debug("resolved visitor location", "ip", ip, "coords", coords)
	return coords, nil
}

// publicHost strips any port from s and returns the bare address, or "" when
// s is not a public IP
func publicHost(s string) string {
	host, _, err := net.SplitHostPort(s)
	if err != nil {
		host = s
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return ""
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
