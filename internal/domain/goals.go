package domain

type GoalKind string

const (
	StepGoal    GoalKind = "step"
	CalorieGoal GoalKind = "calories burned"
)

// GoalShortfall marks a route (by its index in the listed routes) that misses a goal.
type GoalShortfall struct {
	RouteIndex int
	Kind       GoalKind
	Have       int
	Want       int
}

// CheckGoals returns one shortfall per route and goal the route does not meet.
func CheckGoals(routes []Route, u User) []GoalShortfall {
	var out []GoalShortfall
	for i, r := range routes {
		if s := r.DistanceSteps(); s < u.StepGoal {
			out = append(out, GoalShortfall{RouteIndex: i, Kind: StepGoal, Have: s, Want: u.StepGoal})
		}
		if c := r.CaloriesBurned(); c < u.CalorieGoal {
			out = append(out, GoalShortfall{RouteIndex: i, Kind: CalorieGoal, Have: c, Want: u.CalorieGoal})
		}
	}
	return out
}
