package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"roadtrip-planner/internal/domain"
	"strings"
)

// Initialize the Postgres geocode cache schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        lat DOUBLE PRECISION NOT NULL,
        lng DOUBLE PRECISION NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_geocode_cache_name
    ON geocode_cache(name);
	`

	statements := []string{
		createGeocodeCacheQuery,
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

type PlaceSeed struct {
	Query string  `json:"query"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// LoadSeeds reads and validates known places from a JSON file.
func LoadSeeds(jsonPath string) (map[string]domain.GeoPoint, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed places: parse json: %w", err)
	}

	out := make(map[string]domain.GeoPoint, len(data))
	for i, item := range data {
		query := strings.TrimSpace(item.Query)
		if query == "" {
			return nil, fmt.Errorf("seed places: item at index %d: query cannot be empty", i+1)
		}

		name := item.Name
		if strings.TrimSpace(name) == "" {
			name = query
		}

		p, err := domain.NewGeoPoint(name, item.Lat, item.Lng)
		if err != nil {
			return nil, fmt.Errorf("seed places: item at index %d: %w", i+1, err)
		}
		out[query] = p
	}

	return out, nil
}

// Populate the geocode cache with known places from a JSON file.
func SeedFromJSON(ctx context.Context, c *SQLGeocodeCache, jsonPath string) (int, error) {
	seeds, err := LoadSeeds(jsonPath)
	if err != nil {
		return 0, err
	}

	if err := c.PutMany(ctx, seeds); err != nil {
		return 0, fmt.Errorf("seed places: %w", err)
	}

	return len(seeds), nil
}
