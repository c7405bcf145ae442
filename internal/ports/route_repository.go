package ports

import (
	"context"

	"campus-route-finder/internal/domain"
)

// Port: persistence for routes and their steps.
type RouteRepository interface {
	// Atomically delete the route oldRouteID (if non-empty) with its steps and
	// insert route with steps.
	ReplaceRoute(ctx context.Context, oldRouteID string, route domain.Route, steps []domain.Step) error
	ListRoutesForUser(ctx context.Context, ownerID int64) ([]domain.Route, error)
	GetRoute(ctx context.Context, routeID string) (*domain.Route, error)
	// Steps are returned sorted by order.
	ListSteps(ctx context.Context, routeID string) ([]domain.Step, error)
	DeleteRoute(ctx context.Context, routeID string) error
	DeleteAllRoutes(ctx context.Context, ownerID int64) error
	UpdateWeekday(ctx context.Context, routeID string, day domain.Weekday) error
}
