// Package bootstrap wires the advisor engine from configuration. Loading is
// synchronous and fatal on failure: the process must not serve any session
// without a valid corpus and a reachable embedding model.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/hdbank-ai/card-advisor/internal/advisor"
	"github.com/hdbank-ai/card-advisor/internal/cache"
	"github.com/hdbank-ai/card-advisor/internal/config"
	"github.com/hdbank-ai/card-advisor/internal/corpus"
	"github.com/hdbank-ai/card-advisor/internal/dialogue"
	"github.com/hdbank-ai/card-advisor/internal/embedding"
	"github.com/hdbank-ai/card-advisor/internal/intent"
	"github.com/hdbank-ai/card-advisor/internal/observability"
)

// App holds the shared, read-only services built at startup plus the
// per-process session manager.
type App struct {
	Config   *config.Config
	Logger   *observability.Logger
	Corpus   *corpus.Corpus
	Catalog  *corpus.Catalog
	Engine   *advisor.Engine
	Sessions *dialogue.Manager
	Cache    cache.Client
}

// New loads the corpus, connects the embedding model, and builds the engine.
func New(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*App, error) {
	corp, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	catalog := corpus.NewCatalog(cfg.Corpus.Cards)

	cacheClient, err := newCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("init embedder: %w", err)
	}

	scorer := embedding.NewScorer(embedder, cacheClient, cfg.Cache.TTL)
	if err := scorer.Verify(ctx); err != nil {
		return nil, err
	}

	classifier := intent.NewClassifier(intent.Default(), scorer)

	engine, err := advisor.New(logger, corp, catalog, classifier, advisor.Config{
		Threshold: cfg.Retrieval.AcceptanceThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	logger.Info().
		Int("qa_pairs", corp.Len()).
		Int("cards", catalog.Len()).
		Str("embedding_model", embedder.Model()).
		Msg("Advisor ready")

	return &App{
		Config:   cfg,
		Logger:   logger,
		Corpus:   corp,
		Catalog:  catalog,
		Engine:   engine,
		Sessions: dialogue.NewManager(),
		Cache:    cacheClient,
	}, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a.Cache != nil {
		return a.Cache.Close()
	}
	return nil
}

func newCache(cfg *config.Config) (cache.Client, error) {
	if cfg.Cache.Driver == "redis" {
		return cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
	}
	return cache.NewMemoryClient(cfg.Cache.MaxEntries), nil
}

func newEmbedder(cfg *config.Config) (embedding.Embedder, error) {
	if cfg.Embedding.Mock {
		return embedding.NewMockClient(cfg.Embedding.Dimension), nil
	}
	return embedding.NewClient(embedding.Config{
		APIKey:    os.Getenv("EMBEDDING_API_KEY"),
		Model:     cfg.Embedding.Model,
		BaseURL:   cfg.Embedding.BaseURL,
		Dimension: cfg.Embedding.Dimension,
		Timeout:   cfg.Embedding.Timeout,
	})
}
