package ports

import (
	"context"

	"campus-route-finder/internal/domain"
)

// Port: maps building acronyms and names to buildings with coordinates.
// Lookups of unknown buildings fail with domain.ErrNotFound.
type BuildingDirectory interface {
	GetBuilding(ctx context.Context, acronym string) (*domain.Building, error)
	FindByName(ctx context.Context, name string) (*domain.Building, error)
	ListBuildings(ctx context.Context) ([]domain.Building, error)
}
