package cache

import (
	"campus-route-finder/internal/platform/obs"
	"campus-route-finder/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLDistanceCache is a SQL-backed cache for origin->destination walking results.
// Keys are the "lat,lon" strings produced by domain.Coordinates.Key.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// Fetch the cached result for one pair. ok is false on a miss.
func (s *SQLDistanceCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.DistanceResult, ok bool, err error) {
	defer obs.Time(ctx, "distance.cache.Get")(&err)

	if s.DB == nil {
		return ports.DistanceResult{}, false, errors.New("distance cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return ports.DistanceResult{}, false, errors.New("get distance cache: origin and destination must not be empty")
	}

	q := `
	SELECT distance_miles, duration_minutes
    FROM distance_cache
    WHERE origin = $1
        AND destination = $2;
	`

	var r ports.DistanceResult
	err = s.DB.QueryRowContext(ctx, q, origin, destination).Scan(&r.DistanceMiles, &r.DurationMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.DistanceResult{}, false, nil
	}
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}

	return r, true, nil
}

// Store one result, replacing any previous value for the pair.
func (s *SQLDistanceCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	r ports.DistanceResult,
) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return errors.New("insert distance cache: origin and destination must not be empty")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO distance_cache (origin, destination, distance_miles, duration_minutes)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_miles = EXCLUDED.distance_miles,
		duration_minutes = EXCLUDED.duration_minutes;
	`, origin, destination, r.DistanceMiles, r.DurationMinutes)
	if err != nil {
		return fmt.Errorf("insert distance cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
