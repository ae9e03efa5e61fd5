// Package container provides dependency injection for the txsearch application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/txsearch/internal/batch"
	"fjacquet/txsearch/internal/common"
	"fjacquet/txsearch/internal/config"
	"fjacquet/txsearch/internal/logging"
	"fjacquet/txsearch/internal/models"
	"fjacquet/txsearch/internal/operator"
	"fjacquet/txsearch/internal/report"
	"fjacquet/txsearch/internal/resolver"
	"fjacquet/txsearch/internal/search"
	"fjacquet/txsearch/internal/storage"
	"fjacquet/txsearch/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     *store.CatalogStore
	sqlite    *storage.SQLiteCatalog
	cache     *resolver.CachingResolver
	registry  *operator.Registry
	searcher  *search.Searcher
	reporter  *report.ReportGenerator
	delimiter rune
}

// NewContainer creates and wires all application dependencies, building the
// logger from the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.NewLogger(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	delimiter, err := common.ParseDelimiter(cfg.Transactions.Delimiter)
	if err != nil {
		return nil, err
	}

	registry, err := operator.NewRegistry(cfg.Search.Operators)
	if err != nil {
		return nil, fmt.Errorf("failed to build operator registry: %w", err)
	}

	c := &Container{
		logger:    logger,
		config:    cfg,
		store:     store.NewCatalogStore(cfg.Catalog.File, logger),
		registry:  registry,
		reporter:  report.NewReportGenerator(logger),
		delimiter: delimiter,
	}

	backend, err := c.openBackend()
	if err != nil {
		return nil, err
	}
	resolvers := resolver.SetFrom(backend)
	if cfg.Cache.Enabled {
		c.cache = resolver.NewCachingResolver(resolvers, cfg.Cache.Size, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		resolvers = c.cache.Set()
	}

	c.searcher, err = search.NewSearcher(registry, resolvers, logger,
		search.WithResolverLimit(cfg.Search.ResolverLimit))
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to create searcher: %w", err)
	}

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldBackend, cfg.Catalog.Backend),
		logging.F("operators", registry.Len()),
		logging.F("cache_enabled", cfg.Cache.Enabled))
	return c, nil
}

func (c *Container) openBackend() (resolver.Backend, error) {
	switch c.config.Catalog.Backend {
	case config.BackendSQLite:
		db, err := storage.NewSQLiteCatalog(c.config.Catalog.SQLitePath, c.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite catalog: %w", err)
		}
		c.sqlite = db
		return db, nil
	case config.BackendYAML, "":
		catalog, err := c.store.LoadCatalog()
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		return resolver.NewMemoryResolver(catalog), nil
	default:
		return nil, fmt.Errorf("unknown catalog backend: %s", c.config.Catalog.Backend)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetSearcher returns the query searcher.
func (c *Container) GetSearcher() *search.Searcher {
	return c.searcher
}

// GetRegistry returns the enabled operators.
func (c *Container) GetRegistry() *operator.Registry {
	return c.registry
}

// GetStore returns the YAML catalog store.
func (c *Container) GetStore() *store.CatalogStore {
	return c.store
}

// GetReportGenerator returns the report renderer.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reporter
}

// GetResolverCache returns the resolver cache, or nil when caching is disabled.
func (c *Container) GetResolverCache() *resolver.CachingResolver {
	return c.cache
}

// NewBatchRunner creates a batch runner bound to the searcher and the
// configured parallelism.
func (c *Container) NewBatchRunner() *batch.Runner {
	return batch.NewRunner(c.searcher, c.logger, c.config.Search.MaxParallel)
}

// LoadTransactions reads a transaction CSV with the configured delimiter. An
// empty path falls back to transactions.file.
func (c *Container) LoadTransactions(path string) ([]models.Transaction, error) {
	if path == "" {
		path = c.config.Transactions.File
	}
	if path == "" {
		return nil, fmt.Errorf("no transactions file given")
	}
	return common.ReadTransactionsFile(path, c.delimiter, c.logger)
}

// ImportCatalog copies the YAML catalog into the SQLite database at
// catalog.sqlite_path, opening it if the container runs on the YAML backend.
func (c *Container) ImportCatalog(ctx context.Context) (int, error) {
	catalog, err := c.store.LoadCatalog()
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog: %w", err)
	}

	db := c.sqlite
	if db == nil {
		db, err = storage.NewSQLiteCatalog(c.config.Catalog.SQLitePath, c.logger)
		if err != nil {
			return 0, fmt.Errorf("failed to open SQLite catalog: %w", err)
		}
		defer db.Close()
	}

	if err := db.Import(ctx, catalog); err != nil {
		return 0, err
	}
	if c.cache != nil {
		c.cache.Purge()
	}
	return catalog.Size(), nil
}

// Close releases the SQLite catalog if one is open.
func (c *Container) Close() error {
	if c.sqlite != nil {
		if err := c.sqlite.Close(); err != nil {
			return fmt.Errorf("failed to close SQLite catalog: %w", err)
		}
		c.sqlite = nil
	}
	return nil
}
