package ports

import (
	"context"

	"campus-route-finder/internal/domain"
)

// Walking distance and travel duration between two points.
type DistanceResult struct {
	DistanceMiles   float64
	DurationMinutes float64
}

// Contract for retrieving walking distance and duration between coordinates.
// Implementations wrap failures (network, quota, parse) with domain.ErrProvider.
type DistanceProvider interface {
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}
