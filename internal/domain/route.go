package domain

import (
	"math"
	"strings"
)

const (
	// Walking steps per mile and calories burned per mile, matching the
	// generated distance_steps and calories_burned columns.
	StepsPerMile    = 2200
	CaloriesPerMile = 100
)

// Represents a walking route for one user on one weekday.
// A Route is the aggregate of an ordered, chained step sequence: LocationPath
// lists every building visited in order and the totals are the sums over the steps.
// Any edit to the steps produces a new Route with a new ID.
type Route struct {
	ID                 string
	OwnerID            int64
	Weekday            Weekday
	LocationPath       []string
	TotalDistanceMiles float64
	TotalTimeMinutes   float64
}

// Locations returns the location path in its persisted comma separated form.
func (r Route) Locations() string { return strings.Join(r.LocationPath, ",") }

// ParseLocations splits a persisted comma separated location path.
func ParseLocations(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// DistanceSteps and CaloriesBurned round to the nearest integer, half to even,
// the way Postgres casts the generated columns to INTEGER.
func (r Route) DistanceSteps() int { return perMile(r.TotalDistanceMiles, StepsPerMile) }

func (r Route) CaloriesBurned() int { return perMile(r.TotalDistanceMiles, CaloriesPerMile) }

func perMile(miles float64, rate int) int { return int(math.RoundToEven(miles * float64(rate))) }
