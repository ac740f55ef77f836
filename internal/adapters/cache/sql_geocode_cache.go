package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/platform/obs"
	"strings"
)

// SQLGeocodeCache is a Postgres-backed cache mapping normalized queries to stops.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch the cached stop for query.
func (s *SQLGeocodeCache) Get(ctx context.Context, query string) (_ domain.GeoPoint, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.GeoPoint{}, false, errors.New("geocode cache: db is nil")
	}

	key := NormalizeQuery(query)
	if key == "" {
		return domain.GeoPoint{}, false, errors.New("get geocode cache: query must not be empty")
	}

	q := `
	SELECT name, lat, lng
    FROM geocode_cache
    WHERE query = $1;
	`

	var p domain.GeoPoint
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&p.Name, &p.Lat, &p.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GeoPoint{}, false, nil
	}
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return p, true, nil
}

// Store a query -> stop mapping.
func (s *SQLGeocodeCache) Put(ctx context.Context, query string, p domain.GeoPoint) error {
	return s.PutMany(ctx, map[string]domain.GeoPoint{query: p})
}

// Store many query -> stop mappings in one transaction.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.GeoPoint) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (query, name, lat, lng)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (query) DO UPDATE
	SET name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for query, p := range results {
		key := NormalizeQuery(query)
		if key == "" {
			return fmt.Errorf("insert geocode cache: empty query key")
		}

		if _, err := stmt.ExecContext(ctx, key, p.Name, p.Lat, p.Lng); err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}

// NormalizeQuery produces consistent cache keys by collapsing whitespace and case.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
