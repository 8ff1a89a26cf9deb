package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/natal-chart/internal/domain/astro"
	"github.com/yanqian/natal-chart/internal/domain/auth"
	"github.com/yanqian/natal-chart/internal/domain/chart"
	"github.com/yanqian/natal-chart/internal/infra/archive"
	"github.com/yanqian/natal-chart/internal/infra/chartcache"
	"github.com/yanqian/natal-chart/internal/infra/chartrepo"
	"github.com/yanqian/natal-chart/internal/infra/config"
	"github.com/yanqian/natal-chart/internal/infra/ephemeris"
)

func provideChartConfig(cfg *config.Config) chart.Config {
	return chart.Config{
		Locale:      cfg.Chart.Locale,
		BodyTimeout: cfg.Chart.BodyTimeout,
		RetryOnce:   cfg.Chart.RetryOnce,
		MinYear:     cfg.Chart.MinYear,
		MaxYear:     cfg.Chart.MaxYear,
		CacheTTL:    cfg.Cache.TTL,
	}
}

func provideEphemeris(cfg *config.Config, logger *slog.Logger) (astro.Ephemeris, error) {
	eph, err := ephemeris.New(cfg.Chart.Ephemeris, ephemeris.Options{VSOP87Dir: cfg.Ephemeris.VSOP87Dir}, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("ephemeris backend selected", "backend", eph.Name())
	return eph, nil
}

func provideAyanamsa(cfg *config.Config) (astro.AyanamsaProvider, error) {
	return astro.NewAyanamsa(cfg.Chart.Ayanamsa)
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:   cfg.Auth.Secret,
		TokenTTL: cfg.Auth.TokenTTL,
	}
}

func provideChartRepository(cfg *config.Config, logger *slog.Logger) chart.Repository {
	fallback := chartrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory chart repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory chart repository", "error", err)
		return fallback
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory chart repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory chart repository", "error", err)
		pool.Close()
		return fallback
	}
	repo := chartrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("chart schema setup failed, using memory chart repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres chart repository enabled")
	return repo
}

func provideChartCache(cfg *config.Config, logger *slog.Logger) chart.Cache {
	if !cfg.Cache.Enabled {
		return chartcache.NewMemoryStore()
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return chartcache.NewMemoryStore()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return chartcache.NewMemoryStore()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return chartcache.NewMemoryStore()
	}
	logger.Info("valkey chart cache enabled", "addr", cfg.Cache.Addr)
	return chartcache.NewValkeyStore(client, cfg.Cache.Prefix)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Cache.Addr, "://") {
		return valkey.ParseURL(cfg.Cache.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}, nil
}

// provideChartArchive returns nil when archiving is off; the chart service
// then skips snapshots.
func provideChartArchive(cfg *config.Config, logger *slog.Logger) chart.Archive {
	if !cfg.Archive.Enabled {
		return nil
	}
	store, err := archive.NewR2Storage(cfg.Archive.Endpoint, cfg.Archive.AccessKey, cfg.Archive.SecretKey, cfg.Archive.Bucket, cfg.Archive.Region, logger)
	if err != nil {
		logger.Error("failed to initialize chart archive, snapshots disabled", "error", err)
		return nil
	}
	logger.Info("chart archive enabled", "bucket", cfg.Archive.Bucket)
	return store
}
