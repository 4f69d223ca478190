// Package projection converts between the map's EPSG:3857 (spherical web
// mercator) plane and EPSG:4326 longitude/latitude.
package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"weather-map/internal/types"
)

// ErrOutsideMap is returned for projected points that map to no coordinate
var ErrOutsideMap = errors.New("point is outside the map")

// MaxExtent is the half-width of the EPSG:3857 world square in meters
const MaxExtent = 20037508.342789244

// ToLonLat converts a projected map coordinate to a geographic one. Points
// from a horizontally wrapped world copy are folded back into [-180, 180].
func ToLonLat(x, y float64) (types.Coords, error) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return types.Coords{}, fmt.Errorf("%w: (%v, %v) is not finite", ErrOutsideMap, x, y)
	}
	if math.Abs(y) > MaxExtent {
		return types.Coords{}, fmt.Errorf("%w: y %v is beyond the mercator extent", ErrOutsideMap, y)
	}

	p := project.Mercator.ToWGS84(orb.Point{x, y})
	return types.NewCoords(p.Lat(), wrapLongitude(p.Lon())), nil
}

// FromLonLat converts a geographic coordinate to the map's projection, the
// inverse used when centering the view.
func FromLonLat(coords types.Coords) orb.Point {
	return project.WGS84.ToMercator(orb.Point{coords.Longitude, coords.Latitude})
}

func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	wrapped := math.Mod(lon+180, 360)
	if wrapped < 0 {
		wrapped += 360
	}
	return wrapped - 180
}
