package repositories

import (
	"campus-route-finder/internal/domain"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPeopleQuery := `
	CREATE TABLE IF NOT EXISTS people (
		byu_id BIGINT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		step_goal INTEGER NOT NULL DEFAULT 0,
		calorie_goal INTEGER NOT NULL DEFAULT 0
	);
	`

	createBuildingsQuery := `
	CREATE TABLE IF NOT EXISTS buildings (
		building_acronym TEXT PRIMARY KEY,
		building_name TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS user_routes (
		route_id TEXT PRIMARY KEY,
		byu_id BIGINT NOT NULL REFERENCES people(byu_id) ON DELETE CASCADE,
		route_locations TEXT NOT NULL,
		week_day TEXT NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		distance_steps INTEGER GENERATED ALWAYS AS (distance_miles * 2200) STORED,
		calories_burned INTEGER GENERATED ALWAYS AS (distance_miles * 100) STORED,
		time_minutes DOUBLE PRECISION NOT NULL
	);
	`

	createStepsQuery := `
	CREATE TABLE IF NOT EXISTS steps (
		step_order INTEGER NOT NULL,
		byu_id BIGINT NOT NULL REFERENCES people(byu_id) ON DELETE CASCADE,
		route_id TEXT NOT NULL REFERENCES user_routes(route_id) ON DELETE CASCADE,
		week_day TEXT NOT NULL,
		start_location TEXT NOT NULL,
		end_location TEXT NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		distance_steps INTEGER GENERATED ALWAYS AS (distance_miles * 2200) STORED,
		calories_burned INTEGER GENERATED ALWAYS AS (distance_miles * 100) STORED,
		time_minutes DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (route_id, step_order)
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_miles DOUBLE PRECISION NOT NULL,
        duration_minutes DOUBLE PRECISION NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_user_routes_byu_id
    ON user_routes(byu_id);
	`

	statements := []string{
		createPeopleQuery,
		createBuildingsQuery,
		createRoutesQuery,
		createStepsQuery,
		createDistanceCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// BuildingSeed is one entry of a buildings JSON file, in the shape the campus
// location API returns.
type BuildingSeed struct {
	Acronym   string  `json:"acronym"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParseBuildingSeeds validates seed entries and converts them to buildings.
// Acronyms are upper-cased.
func ParseBuildingSeeds(data []byte) ([]domain.Building, error) {
	var seeds []BuildingSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse buildings: %w", err)
	}

	out := make([]domain.Building, 0, len(seeds))
	for i, s := range seeds {
		acronym := strings.ToUpper(strings.TrimSpace(s.Acronym))
		if acronym == "" {
			return nil, fmt.Errorf("parse buildings: item %d: acronym cannot be empty", i+1)
		}

		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("parse buildings: item %d (%s): name cannot be empty", i+1, acronym)
		}

		out = append(out, domain.Building{
			Acronym:     acronym,
			Name:        name,
			Coordinates: domain.Coordinates{Lat: s.Latitude, Lon: s.Longitude},
		})
	}

	return out, nil
}

// Populate the buildings table from a JSON file.
func SeedBuildingsFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed buildings: read %q: %w", jsonPath, err)
	}

	buildings, err := ParseBuildingSeeds(bytes)
	if err != nil {
		return 0, fmt.Errorf("seed buildings: %w", err)
	}

	if err := NewPostgresBuildingRepository(db).AddBuildings(ctx, buildings); err != nil {
		return 0, fmt.Errorf("seed buildings: %w", err)
	}

	return len(buildings), nil
}
