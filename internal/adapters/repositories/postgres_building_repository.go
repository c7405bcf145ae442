package repositories

import (
	"campus-route-finder/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Postgres-backed building directory and store.
type PostgresBuildingRepository struct{ DB *sql.DB }

func NewPostgresBuildingRepository(db *sql.DB) *PostgresBuildingRepository {
	return &PostgresBuildingRepository{DB: db}
}

const selectBuilding = `
	SELECT
		building_acronym,
		building_name,
		latitude,
		longitude
	FROM buildings
	`

func (r *PostgresBuildingRepository) GetBuilding(ctx context.Context, acronym string) (*domain.Building, error) {
	return r.getOne(ctx, "get building", selectBuilding+"WHERE building_acronym = $1;", strings.ToUpper(strings.TrimSpace(acronym)))
}

func (r *PostgresBuildingRepository) FindByName(ctx context.Context, name string) (*domain.Building, error) {
	return r.getOne(ctx, "find building", selectBuilding+"WHERE building_name = $1;", strings.TrimSpace(name))
}

func (r *PostgresBuildingRepository) getOne(ctx context.Context, op, query, arg string) (*domain.Building, error) {
	if r.DB == nil {
		return nil, errors.New("postgres building repository: DB is nil")
	}

	var b domain.Building
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&b.Acronym, &b.Name, &b.Lat, &b.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %q: %w", op, arg, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", op, arg, err)
	}

	return &b, nil
}

// Return all buildings ordered by name.
func (r *PostgresBuildingRepository) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	if r.DB == nil {
		return nil, errors.New("postgres building repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, selectBuilding+"ORDER BY building_name;")
	if err != nil {
		return nil, fmt.Errorf("list buildings: query buildings table: %w", err)
	}
	defer rows.Close()

	buildings := make([]domain.Building, 0, 256)
	for rows.Next() {
		var b domain.Building
		if err := rows.Scan(&b.Acronym, &b.Name, &b.Lat, &b.Lon); err != nil {
			return nil, fmt.Errorf("list buildings: scan row: %w", err)
		}
		buildings = append(buildings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list buildings: row iteration: %w", err)
	}

	return buildings, nil
}

// Upsert buildings in a single transaction.
func (r *PostgresBuildingRepository) AddBuildings(ctx context.Context, buildings []domain.Building) error {
	if r.DB == nil {
		return errors.New("postgres building repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add buildings: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO buildings (
		building_acronym,
		building_name,
		latitude,
		longitude
	)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (building_acronym) DO UPDATE
	SET building_name = EXCLUDED.building_name,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude;
	`)
	if err != nil {
		return fmt.Errorf("add buildings: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range buildings {
		if _, err := stmt.ExecContext(ctx, b.Acronym, b.Name, b.Lat, b.Lon); err != nil {
			return fmt.Errorf("add buildings: insert %s: %w", b.Acronym, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add buildings: commit tx: %w", err)
	}

	return nil
}

func (r *PostgresBuildingRepository) CountBuildings(ctx context.Context) (int, error) {
	if r.DB == nil {
		return 0, errors.New("postgres building repository: DB is nil")
	}

	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM buildings;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count buildings: %w", err)
	}
	return n, nil
}
