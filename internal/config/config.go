package config

import (
	"errors"
	"fmt"
	"os"
	"roadtrip-planner/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultInitialStops = "Stockholm, Sweden@59.3293,18.0686;Paris, France@48.8566,2.3522"

type Config struct {
	Port   string
	AppEnv string

	NominatimURL string
	OSRMURL      string
	OSRMProfile  string
	UserAgent    string
	HTTPTimeout  time.Duration

	DatabaseURL     string
	RedisURL        string
	GeocodeCacheTTL time.Duration

	NATSURL     string
	NATSSubject string

	// Free-form seed stops. Ignored when Origin and Destination are set.
	InitialStops []domain.GeoPoint
	Origin       *domain.GeoPoint
	Destination  *domain.GeoPoint

	DefaultTheme      domain.Theme
	IncrementalRender bool
}

// Load reads configuration from the environment, after loading .env if present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         Get("PORT", "8080"),
		AppEnv:       Get("APP_ENV", "development"),
		NominatimURL: Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		OSRMURL:      Get("OSRM_URL", "https://router.project-osrm.org"),
		OSRMProfile:  Get("OSRM_PROFILE", "driving"),
		UserAgent:    Get("USER_AGENT", "RoadtripPlanner/1.0"),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:     strings.TrimSpace(os.Getenv("REDIS_URL")),
		NATSURL:      strings.TrimSpace(os.Getenv("NATS_URL")),
		NATSSubject:  Get("NATS_SUBJECT", "roadtrip.session"),
	}

	var err error
	if cfg.HTTPTimeout, err = duration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.GeocodeCacheTTL, err = duration("GEOCODE_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	if cfg.IncrementalRender, err = strconv.ParseBool(Get("INCREMENTAL_RENDER", "true")); err != nil {
		return nil, fmt.Errorf("invalid INCREMENTAL_RENDER: %w", err)
	}

	if cfg.DefaultTheme, err = domain.ParseTheme(Get("DEFAULT_THEME", string(domain.ThemeLight))); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_THEME: %w", err)
	}

	origin, destination := os.Getenv("ORIGIN"), os.Getenv("DESTINATION")
	switch {
	case origin != "" && destination != "":
		o, err := ParseStop(origin)
		if err != nil {
			return nil, fmt.Errorf("invalid ORIGIN: %w", err)
		}
		d, err := ParseStop(destination)
		if err != nil {
			return nil, fmt.Errorf("invalid DESTINATION: %w", err)
		}
		cfg.Origin, cfg.Destination = &o, &d
	case origin != "" || destination != "":
		return nil, errors.New("ORIGIN and DESTINATION must be set together")
	default:
		raw, ok := os.LookupEnv("INITIAL_STOPS")
		if !ok {
			raw = defaultInitialStops
		}
		if cfg.InitialStops, err = ParseStops(raw); err != nil {
			return nil, fmt.Errorf("invalid INITIAL_STOPS: %w", err)
		}
	}

	return cfg, nil
}

// Anchored reports whether the session uses a fixed origin and destination.
func (c *Config) Anchored() bool { return c.Origin != nil && c.Destination != nil }

// Get returns the environment value for key or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// ParseStop parses "name@lat,lng".
func ParseStop(s string) (domain.GeoPoint, error) {
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return domain.GeoPoint{}, fmt.Errorf("stop %q: expected name@lat,lng", s)
	}

	coords := strings.Split(s[at+1:], ",")
	if len(coords) != 2 {
		return domain.GeoPoint{}, fmt.Errorf("stop %q: expected lat,lng", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("stop %q: latitude: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("stop %q: longitude: %w", s, err)
	}

	return domain.NewGeoPoint(s[:at], lat, lng)
}

// ParseStops parses a ';' separated list of stops. Blank input yields no stops.
func ParseStops(s string) ([]domain.GeoPoint, error) {
	var out []domain.GeoPoint
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		p, err := ParseStop(part)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}
