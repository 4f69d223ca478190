package timezone

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"

	"weather-map/internal/types"
)

var ErrNoTimezone = errors.New("no timezone for coordinates")

// Service resolves IANA timezones for coordinates that the weather payload
// did not label, or labelled with a zone the local tz database lacks.
type Service interface {
	// GetTimezone returns names like "America/Denver" or "Etc/GMT+10"
	GetTimezone(coords types.Coords) (string, error)
	// Location returns the loaded *time.Location for name, falling back to
	// the zone that contains coords when name is empty or unknown.
	Location(name string, coords types.Coords) (*time.Location, error)
}

type service struct {
	finder tzf.F
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService returns the process-wide timezone service. tzf keeps its
// polygons in memory, so the finder is built once.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

func (s *service) GetTimezone(coords types.Coords) (string, error) {
	name := s.finder.GetTimezoneName(coords.Longitude, coords.Latitude)
	if name == "" {
		return "", fmt.Errorf("%w: %s", ErrNoTimezone, coords)
	}
	return name, nil
}

func (s *service) Location(name string, coords types.Coords) (*time.Location, error) {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc, nil
		}
	}

	resolved, err := s.GetTimezone(coords)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", resolved, err)
	}
	return loc, nil
}
