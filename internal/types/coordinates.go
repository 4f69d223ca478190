package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrMalformedLoc     = errors.New(`location must be formatted as "lat,lon"`)
)

// Coords is a geographic coordinate in decimal degrees
type Coords struct {
	Longitude float64 `json:"longitude" example:"-74.006"`
	Latitude  float64 `json:"latitude" example:"40.7128"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// ParseLatLon parses a "lat,lon" string, the order IP geolocation APIs use,
// into Coords.
func ParseLatLon(loc string) (Coords, error) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return Coords{}, fmt.Errorf("%w: %q", ErrMalformedLoc, loc)
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coords{}, fmt.Errorf("%w: %q", ErrMalformedLoc, loc)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coords{}, fmt.Errorf("%w: %q", ErrMalformedLoc, loc)
	}

	coords := NewCoords(latitude, longitude)
	if err := coords.Validate(); err != nil {
		return Coords{}, err
	}
	return coords, nil
}

// Validate reports whether both components are inside the WGS84 range
func (c Coords) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: got %f", ErrInvalidLatitude, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: got %f", ErrInvalidLongitude, c.Longitude)
	}
	return nil
}

func (c Coords) String() string {
	return fmt.Sprintf("(%f, %f)", c.Longitude, c.Latitude)
}
