package ports

import (
	"context"

	"campus-route-finder/internal/domain"
)

// Port: persistence for users and their goals.
type UserRepository interface {
	// Returns domain.ErrNotFound for unknown users.
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	AddUser(ctx context.Context, u domain.User) error
	UpdateGoals(ctx context.Context, id int64, stepGoal, calorieGoal int) error
}
