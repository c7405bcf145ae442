package domain

// Represents one directed leg of a route, from one building to the next.
// Order is the 1-based position of the step within its route. RouteID stays
// empty until the owning route is aggregated and persisted.
type Step struct {
	Order           int
	RouteID         string
	OwnerID         int64
	Weekday         Weekday
	StartLocation   string
	EndLocation     string
	DistanceMiles   float64
	DurationMinutes float64
}

// Chained reports whether every step ends where the next one starts.
func Chained(steps []Step) bool {
	for i := 0; i+1 < len(steps); i++ {
		if steps[i].EndLocation != steps[i+1].StartLocation {
			return false
		}
	}
	return true
}

// Dense reports whether the step orders are exactly 1..len(steps), in any array order.
func Dense(steps []Step) bool {
	seen := make([]bool, len(steps)+1)
	for _, s := range steps {
		if s.Order < 1 || s.Order > len(steps) || seen[s.Order] {
			return false
		}
		seen[s.Order] = true
	}
	return true
}
