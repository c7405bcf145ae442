package repositories

import (
	"campus-route-finder/internal/domain"
	"campus-route-finder/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the RouteRepository port.
//
// A route and its steps are always written together: ReplaceRoute removes the
// old route (its steps go with it through ON DELETE CASCADE) and inserts the new
// one inside a single transaction.
type PostgresRouteRepository struct{ DB *sql.DB }

func NewPostgresRouteRepository(db *sql.DB) *PostgresRouteRepository {
	return &PostgresRouteRepository{DB: db}
}

func (r *PostgresRouteRepository) ReplaceRoute(
	ctx context.Context,
	oldRouteID string,
	route domain.Route,
	steps []domain.Step,
) (err error) {
	defer obs.Time(ctx, "routes.ReplaceRoute")(&err)

	if r.DB == nil {
		return errors.New("postgres route repository: DB is nil")
	}
	if route.ID == "" {
		return errors.New("replace route: new route id is empty")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace route: begin tx: %w", err)
	}
	defer tx.Rollback()

	if oldRouteID != "" {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_routes WHERE route_id = $1;`, oldRouteID); err != nil {
			return fmt.Errorf("replace route: delete %q: %w", oldRouteID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO user_routes (
		route_id,
		byu_id,
		route_locations,
		week_day,
		distance_miles,
		time_minutes
	)
	VALUES ($1, $2, $3, $4, $5, $6);
	`, route.ID, route.OwnerID, route.Locations(), string(route.Weekday), route.TotalDistanceMiles, route.TotalTimeMinutes)
	if err != nil {
		return fmt.Errorf("replace route: insert route %q: %w", route.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO steps (
		step_order,
		byu_id,
		route_id,
		week_day,
		start_location,
		end_location,
		distance_miles,
		time_minutes
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`)
	if err != nil {
		return fmt.Errorf("replace route: prepare step insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range steps {
		_, err := stmt.ExecContext(ctx,
			s.Order, s.OwnerID, route.ID, string(s.Weekday),
			s.StartLocation, s.EndLocation, s.DistanceMiles, s.DurationMinutes,
		)
		if err != nil {
			return fmt.Errorf("replace route: insert step %d: %w", s.Order, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace route: commit tx: %w", err)
	}

	return nil
}

const selectRoute = `
	SELECT
		route_id,
		byu_id,
		route_locations,
		week_day,
		distance_miles,
		time_minutes
	FROM user_routes
	`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (domain.Route, error) {
	var (
		rt        domain.Route
		locations string
		day       string
	)
	if err := row.Scan(&rt.ID, &rt.OwnerID, &locations, &day, &rt.TotalDistanceMiles, &rt.TotalTimeMinutes); err != nil {
		return domain.Route{}, err
	}
	rt.LocationPath = domain.ParseLocations(locations)
	rt.Weekday = domain.Weekday(day)
	return rt, nil
}

// Return a user's routes in weekday order.
func (r *PostgresRouteRepository) ListRoutesForUser(ctx context.Context, ownerID int64) ([]domain.Route, error) {
	if r.DB == nil {
		return nil, errors.New("postgres route repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, selectRoute+`
	WHERE byu_id = $1
	ORDER BY CASE week_day
		WHEN 'Monday' THEN 1
		WHEN 'Tuesday' THEN 2
		WHEN 'Wednesday' THEN 3
		WHEN 'Thursday' THEN 4
		WHEN 'Friday' THEN 5
		WHEN 'Saturday' THEN 6
		ELSE 7
	END, route_id;
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list routes for %d: query user_routes table: %w", ownerID, err)
	}
	defer rows.Close()

	routes := make([]domain.Route, 0, 8)
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("list routes for %d: scan row: %w", ownerID, err)
		}
		routes = append(routes, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes for %d: row iteration: %w", ownerID, err)
	}

	return routes, nil
}

func (r *PostgresRouteRepository) GetRoute(ctx context.Context, routeID string) (*domain.Route, error) {
	if r.DB == nil {
		return nil, errors.New("postgres route repository: DB is nil")
	}

	rt, err := scanRoute(r.DB.QueryRowContext(ctx, selectRoute+"WHERE route_id = $1;", routeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get route %q: %w", routeID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get route %q: %w", routeID, err)
	}

	return &rt, nil
}

func (r *PostgresRouteRepository) ListSteps(ctx context.Context, routeID string) ([]domain.Step, error) {
	if r.DB == nil {
		return nil, errors.New("postgres route repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT
		step_order,
		route_id,
		byu_id,
		week_day,
		start_location,
		end_location,
		distance_miles,
		time_minutes
	FROM steps
	WHERE route_id = $1
	ORDER BY step_order;
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("list steps %q: query steps table: %w", routeID, err)
	}
	defer rows.Close()

	steps := make([]domain.Step, 0, 8)
	for rows.Next() {
		var (
			s   domain.Step
			day string
		)
		err := rows.Scan(&s.Order, &s.RouteID, &s.OwnerID, &day, &s.StartLocation, &s.EndLocation, &s.DistanceMiles, &s.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("list steps %q: scan row: %w", routeID, err)
		}
		s.Weekday = domain.Weekday(day)
		steps = append(steps, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list steps %q: row iteration: %w", routeID, err)
	}

	return steps, nil
}

func (r *PostgresRouteRepository) DeleteRoute(ctx context.Context, routeID string) error {
	if r.DB == nil {
		return errors.New("postgres route repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM user_routes WHERE route_id = $1;`, routeID)
	if err != nil {
		return fmt.Errorf("delete route %q: %w", routeID, err)
	}
	return requireRows(res, fmt.Sprintf("delete route %q", routeID))
}

func (r *PostgresRouteRepository) DeleteAllRoutes(ctx context.Context, ownerID int64) error {
	if r.DB == nil {
		return errors.New("postgres route repository: DB is nil")
	}

	if _, err := r.DB.ExecContext(ctx, `DELETE FROM user_routes WHERE byu_id = $1;`, ownerID); err != nil {
		return fmt.Errorf("delete all routes for %d: %w", ownerID, err)
	}
	return nil
}

// Move a route and its steps to another weekday.
func (r *PostgresRouteRepository) UpdateWeekday(ctx context.Context, routeID string, day domain.Weekday) error {
	if r.DB == nil {
		return errors.New("postgres route repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update weekday: begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE user_routes SET week_day = $2 WHERE route_id = $1;`, routeID, string(day))
	if err != nil {
		return fmt.Errorf("update weekday %q: route: %w", routeID, err)
	}
	if err := requireRows(res, fmt.Sprintf("update weekday %q", routeID)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE steps SET week_day = $2 WHERE route_id = $1;`, routeID, string(day)); err != nil {
		return fmt.Errorf("update weekday %q: steps: %w", routeID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update weekday: commit tx: %w", err)
	}

	return nil
}
