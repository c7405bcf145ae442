package services

import (
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

const mapsDirURL = "https://www.google.com/maps/dir/"

// Walking travel mode suffix for Google Maps directions.
const mapsWalkingData = "data=!4m2!4m1!3e2"

// RouteMap resolves a route's location path to coordinates.
type RouteMap struct {
	Buildings ports.BuildingDirectory
}

func NewRouteMap(buildings ports.BuildingDirectory) *RouteMap {
	return &RouteMap{Buildings: buildings}
}

// Path returns the coordinates of every building on the route, in order.
func (m *RouteMap) Path(ctx context.Context, r domain.Route) ([]domain.Coordinates, error) {
	if len(r.LocationPath) == 0 {
		return nil, fmt.Errorf("route path %q: %w", r.ID, domain.ErrEmptySequence)
	}

	out := make([]domain.Coordinates, 0, len(r.LocationPath))
	for _, acronym := range r.LocationPath {
		b, err := m.Buildings.GetBuilding(ctx, acronym)
		if err != nil {
			return nil, fmt.Errorf("route path %q: %w", r.ID, err)
		}
		out = append(out, b.Coordinates)
	}
	return out, nil
}

// MapsURL builds a Google Maps walking-directions link through every building.
func (m *RouteMap) MapsURL(ctx context.Context, r domain.Route) (string, error) {
	path, err := m.Path(ctx, r)
	if err != nil {
		return "", fmt.Errorf("maps url: %w", err)
	}
	return DirectionsURL(path), nil
}

func DirectionsURL(path []domain.Coordinates) string {
	var sb strings.Builder
	sb.WriteString(mapsDirURL)
	for _, c := range path {
		sb.WriteString(fmt.Sprintf("%g,%g/", c.Lat, c.Lon))
	}
	sb.WriteString(mapsWalkingData)
	return sb.String()
}

// LineString converts a path to an XY line string with lon/lat coordinates.
func LineString(path []domain.Coordinates) (*geom.LineString, error) {
	if len(path) < 2 {
		return nil, errors.New("line string: need at least two points")
	}

	coords := make([]geom.Coord, 0, len(path))
	for _, c := range path {
		coords = append(coords, geom.Coord(c.CoordsToList()))
	}

	ls, err := geom.NewLineString(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, fmt.Errorf("line string: %w", err)
	}
	return ls, nil
}

// GeoJSON renders the route as a GeoJSON Feature whose geometry is the walked
// line and whose properties carry the route totals.
func (m *RouteMap) GeoJSON(ctx context.Context, r domain.Route) ([]byte, error) {
	path, err := m.Path(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}

	ls, err := LineString(path)
	if err != nil {
		return nil, fmt.Errorf("geojson: route %q: %w", r.ID, err)
	}

	f := geojson.Feature{
		ID:       r.ID,
		Geometry: ls,
		Properties: map[string]any{
			"weekday":         string(r.Weekday),
			"locations":       r.LocationPath,
			"distance_miles":  r.TotalDistanceMiles,
			"time_minutes":    r.TotalTimeMinutes,
			"distance_steps":  r.DistanceSteps(),
			"calories_burned": r.CaloriesBurned(),
		},
	}

	b, err := json.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("geojson: marshal route %q: %w", r.ID, err)
	}
	return b, nil
}
