package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"roadtrip-planner/internal/adapters/cache"
	"roadtrip-planner/internal/adapters/mapview"
	"roadtrip-planner/internal/adapters/osm"
	"roadtrip-planner/internal/adapters/prefs"
	"roadtrip-planner/internal/adapters/publisher"
	"roadtrip-planner/internal/api"
	"roadtrip-planner/internal/config"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/metrics"
	"roadtrip-planner/internal/platform/db"
	"roadtrip-planner/internal/platform/obs"
	"roadtrip-planner/internal/ports"
	"roadtrip-planner/internal/services"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, OSRM, Postgres, Redis, NATS) behind ports and starts the HTTP server.
func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code so deferred cleanup runs before os.Exit.
func realMain() int {
	cfg, err := config.Load()
	if err != nil {
		log.Println(err)
		return 1
	}

	logger, err := obs.NewLogger(cfg.AppEnv, "roadtrip")
	if err != nil {
		log.Println(err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	collector := metrics.NewCollector()

	client, err := osm.NewClient(osm.Options{
		NominatimURL: cfg.NominatimURL,
		OSRMURL:      cfg.OSRMURL,
		Profile:      cfg.OSRMProfile,
		UserAgent:    cfg.UserAgent,
		Timeout:      cfg.HTTPTimeout,
		Metrics:      collector,
	})
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	var geocoder ports.Geocoder = client
	var prefStore ports.PreferenceStore = prefs.NewMemoryStore()

	// Postgres takes precedence over Redis as the geocode cache; Redis still
	// backs preferences when configured.
	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		defer sqlDB.Close()

		if err := cache.InitSchema(ctx, sqlDB); err != nil {
			return fmt.Errorf("run: %w", err)
		}
		geocoder = cache.NewGeocoder(client, cache.NewSQLGeocodeCache(sqlDB), logger.Named("geocode_cache"), collector)
		logger.Info("geocode cache enabled", zap.String("backend", "postgres"))
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("run: parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("run: ping redis: %w", err)
		}
		if cfg.DatabaseURL == "" {
			geocoder = cache.NewGeocoder(client, cache.NewRedisGeocodeCache(rdb, cfg.GeocodeCacheTTL), logger.Named("geocode_cache"), collector)
			logger.Info("geocode cache enabled", zap.String("backend", "redis"), zap.Duration("ttl", cfg.GeocodeCacheTTL))
		}
		prefStore = prefs.NewRedisStore(rdb, prefs.DefaultThemeKey)
	}

	var events ports.EventPublisher = publisher.Nop{}
	if cfg.NATSURL != "" {
		pub, err := publisher.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, logger.Named("nats"))
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		defer pub.Close()
		events = pub
	}

	var stops *domain.StopList
	if cfg.Anchored() {
		stops = domain.NewAnchoredStopList(*cfg.Origin, *cfg.Destination)
	} else {
		stops = domain.NewStopList(cfg.InitialStops...)
	}

	scene := mapview.NewScene(services.DefaultCenter, services.DefaultZoom)
	session, err := services.NewSession(ctx, stops, services.SessionOptions{
		Geocoder:     geocoder,
		Router:       client,
		Surface:      scene,
		Prefs:        prefStore,
		Events:       events,
		Metrics:      collector,
		Logger:       logger.Named("session"),
		Incremental:  cfg.IncrementalRender,
		DefaultTheme: cfg.DefaultTheme,
	})
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	router := api.NewRouter(api.Deps{
		Session: session,
		Scene:   scene,
		Metrics: collector.Handler(),
		Logger:  logger.Named("http"),
	})

	// Timeouts are tuned for multi-leg calculations against the public OSRM server.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("session", session.ID()),
			zap.Int("stops", stops.Len()),
			zap.Bool("anchored", stops.Anchored()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
