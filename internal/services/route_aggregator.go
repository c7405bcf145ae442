package services

import (
	"campus-route-finder/internal/domain"
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
)

// newRouteID generates opaque route identifiers. Collisions are not handled.
var newRouteID = uuid.NewString

// AggregateRoute folds an ordered step sequence into a new Route.
//
// Every call mints a fresh route ID; the returned steps are a copy of the input
// stamped with that ID, ready to replace the previous route as a unit. Totals
// are rounded to two decimals independently. The route's weekday is taken from
// the last step.
func AggregateRoute(steps []domain.Step, ownerID int64) (*domain.Route, []domain.Step, error) {
	if len(steps) == 0 {
		return nil, nil, fmt.Errorf("aggregate route: %w", domain.ErrEmptySequence)
	}

	id := newRouteID()
	out := slices.Clone(steps)

	path := make([]string, 0, len(out)+1)
	path = append(path, out[0].StartLocation)

	var distance, minutes float64
	var weekday domain.Weekday
	for i := range out {
		out[i].RouteID = id
		distance += out[i].DistanceMiles
		minutes += out[i].DurationMinutes
		path = append(path, out[i].EndLocation)
		weekday = out[i].Weekday
	}

	return &domain.Route{
		ID:                 id,
		OwnerID:            ownerID,
		Weekday:            weekday,
		LocationPath:       path,
		TotalDistanceMiles: round2(distance),
		TotalTimeMinutes:   round2(minutes),
	}, out, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
