package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pantrylens/backend/config"
	httpDelivery "github.com/pantrylens/backend/internal/delivery/http"
	"github.com/pantrylens/backend/internal/domain"
	"github.com/pantrylens/backend/internal/infrastructure/cache"
	"github.com/pantrylens/backend/internal/infrastructure/postgres"
	"github.com/pantrylens/backend/internal/infrastructure/sink"
	"github.com/pantrylens/backend/internal/metrics"
	"github.com/pantrylens/backend/internal/usecase"
)

const startupTimeout = 15 * time.Second

func main() {
	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting pantrylens-backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.String("sink_type", cfg.Sink.Type))

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Postgres holds the ingredient catalog and receives assembled batches
	store, err := postgres.NewStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer store.Close()

	snapshotCache, err := buildCache(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("cache initialization failed", zap.Error(err))
	}

	decisionSink := buildSink(cfg, store, logger)

	pipelineMetrics := metrics.NewPipelineMetrics(prometheus.DefaultRegisterer)

	vocab, err := buildVocabulary(cfg, logger)
	if err != nil {
		logger.Fatal("vocabulary load failed", zap.Error(err))
	}

	pipeline := usecase.NewPipelineService(
		store,
		snapshotCache,
		store,
		decisionSink,
		vocab,
		logger,
		pipelineMetrics,
		usecase.PipelineConfig{CatalogTTL: cfg.Cache.TTL},
	)

	handler := httpDelivery.NewHandler(pipeline, cfg.Database.Persist, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// buildLogger builds the zap logger for the configured environment and level.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Server.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

// buildCache selects the catalog snapshot cache backend.
func buildCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.SnapshotCache, error) {
	switch cfg.Cache.Type {
	case "redis":
		logger.Info("using redis snapshot cache")
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	default:
		logger.Info("using in-memory snapshot cache")
		return cache.NewMemoryCache(), nil
	}
}

// buildSink selects where OR-pattern decisions are recorded.
func buildSink(cfg *config.Config, store *postgres.Store, logger *zap.Logger) domain.DecisionSink {
	switch cfg.Sink.Type {
	case "http":
		logger.Info("recording decisions via http", zap.String("endpoint", cfg.Sink.Endpoint))
		return sink.NewHTTPSink(cfg.Sink.Endpoint)
	case "postgres":
		logger.Info("recording decisions in postgres")
		return store
	default:
		return sink.NewLogSink(logger)
	}
}

// buildVocabulary loads rule-table overrides when configured.
func buildVocabulary(cfg *config.Config, logger *zap.Logger) (*usecase.Vocabulary, error) {
	if cfg.Matching.VocabularyFile == "" {
		return usecase.DefaultVocabulary(), nil
	}
	logger.Info("loading vocabulary overrides", zap.String("file", cfg.Matching.VocabularyFile))
	return usecase.LoadVocabulary(cfg.Matching.VocabularyFile)
}
