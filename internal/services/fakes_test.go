package services

import (
	"campus-route-finder/internal/adapters/distance"
	"campus-route-finder/internal/domain"
	"context"
	"fmt"
	"slices"
	"strings"
)

type memBuildings map[string]domain.Building

func newMemBuildings(bs ...domain.Building) memBuildings {
	m := memBuildings{}
	for _, b := range bs {
		m[b.Acronym] = b
	}
	return m
}

func (m memBuildings) GetBuilding(_ context.Context, acronym string) (*domain.Building, error) {
	b, ok := m[strings.ToUpper(acronym)]
	if !ok {
		return nil, fmt.Errorf("building %q: %w", acronym, domain.ErrNotFound)
	}
	return &b, nil
}

func (m memBuildings) FindByName(_ context.Context, name string) (*domain.Building, error) {
	for _, b := range m {
		if b.Name == name {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("building named %q: %w", name, domain.ErrNotFound)
}

func (m memBuildings) ListBuildings(context.Context) ([]domain.Building, error) {
	out := make([]domain.Building, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	return out, nil
}

type memRoutes struct {
	routes map[string]domain.Route
	steps  map[string][]domain.Step
}

func newMemRoutes() *memRoutes {
	return &memRoutes{routes: map[string]domain.Route{}, steps: map[string][]domain.Step{}}
}

func (m *memRoutes) ReplaceRoute(_ context.Context, old string, r domain.Route, steps []domain.Step) error {
	if old != "" {
		delete(m.routes, old)
		delete(m.steps, old)
	}
	m.routes[r.ID] = r
	m.steps[r.ID] = slices.Clone(steps)
	return nil
}

func (m *memRoutes) ListRoutesForUser(_ context.Context, owner int64) ([]domain.Route, error) {
	var out []domain.Route
	for _, r := range m.routes {
		if r.OwnerID == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRoutes) GetRoute(_ context.Context, id string) (*domain.Route, error) {
	r, ok := m.routes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (m *memRoutes) ListSteps(_ context.Context, id string) ([]domain.Step, error) {
	return slices.Clone(m.steps[id]), nil
}

func (m *memRoutes) DeleteRoute(_ context.Context, id string) error {
	if _, ok := m.routes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.routes, id)
	delete(m.steps, id)
	return nil
}

func (m *memRoutes) DeleteAllRoutes(_ context.Context, owner int64) error {
	for id, r := range m.routes {
		if r.OwnerID == owner {
			delete(m.routes, id)
			delete(m.steps, id)
		}
	}
	return nil
}

func (m *memRoutes) UpdateWeekday(_ context.Context, id string, day domain.Weekday) error {
	r, ok := m.routes[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Weekday = day
	m.routes[id] = r
	for i := range m.steps[id] {
		m.steps[id][i].Weekday = day
	}
	return nil
}

// Four buildings on a line with 0.25 mi / 5 min between neighbours.
var (
	bA = domain.Building{Acronym: "A", Name: "Alpha Hall", Coordinates: domain.Coordinates{Lat: 40.0, Lon: -111.0}}
	bB = domain.Building{Acronym: "B", Name: "Beta Hall", Coordinates: domain.Coordinates{Lat: 40.1, Lon: -111.0}}
	bC = domain.Building{Acronym: "C", Name: "Gamma Hall", Coordinates: domain.Coordinates{Lat: 40.2, Lon: -111.0}}
	bD = domain.Building{Acronym: "D", Name: "Delta Hall", Coordinates: domain.Coordinates{Lat: 40.3, Lon: -111.0}}
)

func newTestEditor() (*RouteEditor, *distance.MockDistanceProvider, *memRoutes) {
	all := []domain.Building{bA, bB, bC, bD}
	var pairs []distance.MockPair
	for i, from := range all {
		for j, to := range all {
			if i == j {
				continue
			}
			hops := float64(max(i-j, j-i))
			pairs = append(pairs, distance.MockPair{
				From: from.Coordinates, To: to.Coordinates,
				Miles: 0.25 * hops, Minutes: 5 * hops,
			})
		}
	}

	provider := distance.NewMockDistanceProvider(pairs)
	routes := newMemRoutes()
	return NewRouteEditor(newMemBuildings(all...), provider, routes), provider, routes
}

func leg(order int, from, to string) domain.Step {
	return domain.Step{Order: order, OwnerID: 7, Weekday: domain.Monday, StartLocation: from, EndLocation: to}
}
