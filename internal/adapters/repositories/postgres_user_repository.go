package repositories

import (
	"campus-route-finder/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUserExists is returned by AddUser when the id is already registered.
var ErrUserExists = errors.New("user already exists")

const uniqueViolation = "23505"

type PostgresUserRepository struct{ DB *sql.DB }

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

func (r *PostgresUserRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if r.DB == nil {
		return nil, errors.New("postgres user repository: DB is nil")
	}

	var u domain.User
	err := r.DB.QueryRowContext(ctx, `
	SELECT byu_id, first_name, last_name, step_goal, calorie_goal
	FROM people
	WHERE byu_id = $1;
	`, id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.StepGoal, &u.CalorieGoal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	return &u, nil
}

func (r *PostgresUserRepository) AddUser(ctx context.Context, u domain.User) error {
	if r.DB == nil {
		return errors.New("postgres user repository: DB is nil")
	}

	_, err := r.DB.ExecContext(ctx, `
	INSERT INTO people (byu_id, first_name, last_name, step_goal, calorie_goal)
	VALUES ($1, $2, $3, $4, $5);
	`, u.ID, u.FirstName, u.LastName, u.StepGoal, u.CalorieGoal)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("add user %d: %w", u.ID, ErrUserExists)
	}
	if err != nil {
		return fmt.Errorf("add user %d: %w", u.ID, err)
	}

	return nil
}

func (r *PostgresUserRepository) UpdateGoals(ctx context.Context, id int64, stepGoal, calorieGoal int) error {
	if r.DB == nil {
		return errors.New("postgres user repository: DB is nil")
	}
	if stepGoal < 0 || calorieGoal < 0 {
		return fmt.Errorf("update goals %d: goals must not be negative", id)
	}

	res, err := r.DB.ExecContext(ctx, `
	UPDATE people
	SET step_goal = $2, calorie_goal = $3
	WHERE byu_id = $1;
	`, id, stepGoal, calorieGoal)
	if err != nil {
		return fmt.Errorf("update goals %d: %w", id, err)
	}

	return requireRows(res, fmt.Sprintf("update goals %d", id))
}

func requireRows(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}
