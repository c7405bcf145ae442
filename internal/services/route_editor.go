package services

import (
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/platform/obs"
	"campus-route-finder/internal/ports"
	"context"
	"errors"
	"fmt"
	"slices"
)

// Draft is an in-progress edit of one route's steps.
// RouteID names the persisted route the draft replaces; it is empty for a new route.
type Draft struct {
	RouteID string
	OwnerID int64
	Weekday domain.Weekday
	Steps   []domain.Step
}

// RouteEditor applies structural edits to drafts and persists them.
//
// Edits never touch storage until Save: a failed building lookup or distance
// call abandons that edit and leaves both the draft and the stored route as
// they were.
type RouteEditor struct {
	Buildings ports.BuildingDirectory
	Distances ports.DistanceProvider
	Routes    ports.RouteRepository
}

func NewRouteEditor(
	buildings ports.BuildingDirectory,
	distances ports.DistanceProvider,
	routes ports.RouteRepository,
) *RouteEditor {
	return &RouteEditor{Buildings: buildings, Distances: distances, Routes: routes}
}

// LoadDraft starts an edit of a persisted route.
func (e *RouteEditor) LoadDraft(ctx context.Context, route domain.Route) (Draft, error) {
	steps, err := e.Routes.ListSteps(ctx, route.ID)
	if err != nil {
		return Draft{}, fmt.Errorf("load draft: list steps for route %q: %w", route.ID, err)
	}

	return Draft{
		RouteID: route.ID,
		OwnerID: route.OwnerID,
		Weekday: route.Weekday,
		Steps:   steps,
	}, nil
}

// MeasureLeg resolves both buildings and asks the distance provider for the walk between them.
func (e *RouteEditor) MeasureLeg(
	ctx context.Context,
	ownerID int64,
	day domain.Weekday,
	from string,
	to string,
) (_ domain.Step, err error) {
	defer obs.Time(ctx, "route.MeasureLeg")(&err)

	start, err := e.Buildings.GetBuilding(ctx, from)
	if err != nil {
		return domain.Step{}, fmt.Errorf("measure leg: start building %q: %w", from, err)
	}

	end, err := e.Buildings.GetBuilding(ctx, to)
	if err != nil {
		return domain.Step{}, fmt.Errorf("measure leg: end building %q: %w", to, err)
	}

	res, err := e.Distances.GetDistance(ctx, start.Coordinates, end.Coordinates)
	if err != nil {
		if !errors.Is(err, domain.ErrProvider) {
			err = fmt.Errorf("%w: %w", domain.ErrProvider, err)
		}
		return domain.Step{}, fmt.Errorf("measure leg %q -> %q: %w", start.Acronym, end.Acronym, err)
	}

	return domain.Step{
		OwnerID:         ownerID,
		Weekday:         day,
		StartLocation:   start.Acronym,
		EndLocation:     end.Acronym,
		DistanceMiles:   round2(res.DistanceMiles),
		DurationMinutes: round2(res.DurationMinutes),
	}, nil
}

// AddLeg inserts a freshly measured leg at position.
//
// Only the endpoint that InsertSlot leaves free is read from start/end; the
// other one is forced by the neighbouring step. On error d is returned as given.
func (e *RouteEditor) AddLeg(ctx context.Context, d Draft, position int, start, end string) (Draft, error) {
	slot, err := InsertSlot(d.Steps, position)
	if err != nil {
		return d, fmt.Errorf("add leg: %w", err)
	}

	if slot.FixedStart != "" {
		start = slot.FixedStart
	}
	if slot.FixedEnd != "" {
		end = slot.FixedEnd
	}
	if start == "" || end == "" {
		return d, fmt.Errorf("add leg: position %d: %w", position, domain.ErrIncompleteLeg)
	}

	leg, err := e.MeasureLeg(ctx, d.OwnerID, d.Weekday, start, end)
	if err != nil {
		return d, fmt.Errorf("add leg: %w", err)
	}
	leg.RouteID = d.RouteID

	steps, err := InsertStep(d.Steps, position, leg)
	if err != nil {
		return d, fmt.Errorf("add leg: %w", err)
	}

	next := d
	next.Steps = steps
	return next, nil
}

// RemoveLeg deletes the step at index. Removing the last step requires confirmed.
func (e *RouteEditor) RemoveLeg(d Draft, index int, confirmed bool) (Draft, error) {
	steps, err := DeleteStep(d.Steps, index, confirmed)
	if err != nil {
		return d, fmt.Errorf("remove leg: %w", err)
	}

	next := d
	next.Steps = steps
	return next, nil
}

// RemeasureRoute refreshes the distance and duration of every step.
// Structural edits keep the measurements of shifted steps; this is the explicit way to refresh them.
func (e *RouteEditor) RemeasureRoute(ctx context.Context, d Draft) (Draft, error) {
	steps := slices.Clone(d.Steps)
	for i, s := range steps {
		leg, err := e.MeasureLeg(ctx, s.OwnerID, s.Weekday, s.StartLocation, s.EndLocation)
		if err != nil {
			return d, fmt.Errorf("remeasure route: step %d: %w", s.Order, err)
		}
		steps[i].DistanceMiles = leg.DistanceMiles
		steps[i].DurationMinutes = leg.DurationMinutes
	}

	next := d
	next.Steps = steps
	return next, nil
}

// Save replaces the draft's persisted route with a freshly aggregated one.
//
// An empty draft deletes the persisted route and returns a nil route.
func (e *RouteEditor) Save(ctx context.Context, d Draft) (_ *domain.Route, _ []domain.Step, err error) {
	defer obs.Time(ctx, "route.Save")(&err)

	if len(d.Steps) == 0 {
		if d.RouteID != "" {
			if err := e.Routes.DeleteRoute(ctx, d.RouteID); err != nil {
				return nil, nil, fmt.Errorf("save route: delete emptied route %q: %w", d.RouteID, err)
			}
		}
		return nil, nil, nil
	}

	route, steps, err := AggregateRoute(d.Steps, d.OwnerID)
	if err != nil {
		return nil, nil, fmt.Errorf("save route: %w", err)
	}

	if err := e.Routes.ReplaceRoute(ctx, d.RouteID, *route, steps); err != nil {
		return nil, nil, fmt.Errorf("save route: replace %q with %q: %w", d.RouteID, route.ID, err)
	}

	return route, steps, nil
}

// CreateRoute builds and saves a new route visiting acronyms in order.
func (e *RouteEditor) CreateRoute(
	ctx context.Context,
	ownerID int64,
	day domain.Weekday,
	acronyms []string,
) (*domain.Route, []domain.Step, error) {
	if len(acronyms) < 2 {
		return nil, nil, fmt.Errorf("create route: need at least two buildings, got %d: %w", len(acronyms), domain.ErrEmptySequence)
	}

	d := Draft{OwnerID: ownerID, Weekday: day}

	var err error
	d, err = e.AddLeg(ctx, d, 1, acronyms[0], acronyms[1])
	if err != nil {
		return nil, nil, fmt.Errorf("create route: %w", err)
	}
	for _, next := range acronyms[2:] {
		d, err = e.AddLeg(ctx, d, len(d.Steps)+1, "", next)
		if err != nil {
			return nil, nil, fmt.Errorf("create route: %w", err)
		}
	}

	return e.Save(ctx, d)
}

// ChangeWeekday moves a route and all of its steps to another weekday.
func (e *RouteEditor) ChangeWeekday(ctx context.Context, routeID string, day domain.Weekday) error {
	if !day.Valid() {
		return fmt.Errorf("change weekday: invalid weekday %q", day)
	}

	if err := e.Routes.UpdateWeekday(ctx, routeID, day); err != nil {
		return fmt.Errorf("change weekday: route %q: %w", routeID, err)
	}
	return nil
}
