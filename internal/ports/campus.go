package ports

import (
	"context"

	"campus-route-finder/internal/domain"
)

// Resolves a bearer token to the student it was issued to.
type IdentityProvider interface {
	UserFromToken(ctx context.Context, token string) (*domain.User, error)
}

// Source of the student's enrolled class meetings.
type ScheduleProvider interface {
	EnrolledClasses(ctx context.Context, u domain.User) ([]domain.ClassMeeting, error)
}

// Upstream list of campus buildings used to seed the building directory.
type BuildingSource interface {
	FetchBuildings(ctx context.Context, token string) ([]domain.Building, error)
}

// Writes buildings into the local directory.
type BuildingStore interface {
	AddBuildings(ctx context.Context, buildings []domain.Building) error
	CountBuildings(ctx context.Context) (int, error)
}

// Read-only secret parameter store.
type ParamStore interface {
	GetParameter(ctx context.Context, name string) (string, error)
}
