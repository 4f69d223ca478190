package timezone

import (
	"fmt"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"
	tzfrellite "github.com/ringsaturn/tzf-rel-lite"
	pb "github.com/ringsaturn/tzf/gen/go/tzf/v1"
	"google.golang.org/protobuf/proto"
)

const (
	// Douglas-Peucker tolerance in degrees; boundaries are drawn as thin strokes at world zoom
	overlayTolerance = 0.01

	// Coordinates are rounded to 10^-4 degrees, about 11 m
	overlayRounding = 1e4
)

var (
	overlayOnce sync.Once
	overlayJSON []byte
	overlayErr  error
)

// BoundariesGeoJSON returns the timezone boundary polygons shipped with tzf
// as a GeoJSON FeatureCollection, one feature per zone with a "tzid"
// property. The document is built on first use and shared afterwards.
func BoundariesGeoJSON() ([]byte, error) {
	overlayOnce.Do(func() {
		var input pb.Timezones
		if err := proto.Unmarshal(tzfrellite.LiteData, &input); err != nil {
			overlayErr = fmt.Errorf("failed to decode timezone boundaries: %w", err)
			return
		}

		fc := boundaries(&input)
		overlayJSON, overlayErr = fc.MarshalJSON()
		if overlayErr != nil {
			overlayErr = fmt.Errorf("failed to encode timezone boundaries: %w", overlayErr)
		}
	})
	return overlayJSON, overlayErr
}

func boundaries(input *pb.Timezones) *geojson.FeatureCollection {
	simplifier := simplify.DouglasPeucker(overlayTolerance)
	fc := geojson.NewFeatureCollection()

	for _, tz := range input.GetTimezones() {
		var mp orb.MultiPolygon
		for _, polygon := range tz.GetPolygons() {
			p := orb.Polygon{toRing(polygon.GetPoints())}
			for _, hole := range polygon.GetHoles() {
				p = append(p, toRing(hole.GetPoints()))
			}
			mp = append(mp, p)
		}

		simplified := simplifier.MultiPolygon(mp)
		if len(simplified) == 0 {
			continue
		}

		feature := geojson.NewFeature(orb.Round(simplified, overlayRounding))
		feature.Properties["tzid"] = tz.GetName()
		fc.Append(feature)
	}

	return fc
}

// toRing converts tzf points to a closed ring
func toRing(points []*pb.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(points)+1)
	for _, point := range points {
		ring = append(ring, orb.Point{float64(point.GetLng()), float64(point.GetLat())})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}
