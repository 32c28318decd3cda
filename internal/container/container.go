// Package container wires configuration, stores, engines and services into
// one application graph.
package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"rpascope/adapters/export"
	"rpascope/adapters/mappings"
	"rpascope/adapters/memory"
	"rpascope/adapters/postgres"
	"rpascope/app"
	"rpascope/internal/analysis"
	"rpascope/internal/cache"
	"rpascope/internal/config"
	"rpascope/internal/logging"
	"rpascope/internal/migration"
	ruleengine "rpascope/internal/rules"
	"rpascope/ports"
)

// Container holds the assembled application graph
type Container struct {
	Config *config.Config
	Logger *logging.Logger
	DB     *sqlx.DB

	RuleStore       ports.RuleStore
	StructureStore  ports.StructureStore
	Cache           ports.ReviewCache
	MappingProvider ports.MappingProvider
	Exporter        *export.Exporter

	Reviews    *app.ReviewService
	Migrations *app.MigrationService
	Usage      *app.UsageService
	RuleAdmin  *app.RuleAdminService
	Batch      *app.BatchService
}

// New assembles the container. With DATABASE_URL set the stores are
// PostgreSQL-backed; otherwise the in-memory stores serve (dev/test mode).
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logging.NewDefaultLogger(),
	}

	if err := c.initStores(ctx); err != nil {
		return nil, err
	}
	if err := c.initMappingProvider(); err != nil {
		return nil, err
	}

	if cfg.Cache.Enabled {
		c.Cache = cache.NewMemoryCache(cfg.Cache.TTL)
	}
	c.Exporter = export.NewExporter(cfg.Scoring)

	usageAnalyzer, err := analysis.NewUsageAnalyzer(cfg.Usage)
	if err != nil {
		return nil, fmt.Errorf("failed to build usage analyzer: %w", err)
	}

	engine := ruleengine.NewEngine(cfg.Scoring, ruleengine.NewRegistry())
	scorer := analysis.NewComplexityScorer(cfg.Complexity)
	migrationEngine := migration.NewEngine(c.MappingProvider, cfg.Migration)

	c.Reviews = app.NewReviewService(c.StructureStore, c.RuleStore, engine, scorer, c.Cache, c.Logger)
	c.Migrations = app.NewMigrationService(c.StructureStore, migrationEngine, c.Cache, c.Logger)
	c.Usage = app.NewUsageService(c.StructureStore, usageAnalyzer, c.Cache, c.Logger)
	c.RuleAdmin = app.NewRuleAdminService(c.RuleStore, c.Exporter, c.Logger)
	c.Batch = app.NewBatchService(c.Reviews, 0)

	return c, nil
}

func (c *Container) initStores(ctx context.Context) error {
	if c.Config.Database.URL == "" {
		c.Logger.Info("no DATABASE_URL configured; using in-memory stores")
		c.RuleStore = memory.NewRuleStore(ruleengine.BuiltinRules())
		c.StructureStore = memory.NewStructureStore()
		return nil
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgres.Bootstrap(ctx, db); err != nil {
		return err
	}
	c.DB = db
	c.RuleStore = postgres.NewRuleStore(db)
	c.StructureStore = postgres.NewStructureStore(db)

	c.seedBuiltinRules(ctx)
	return nil
}

// seedBuiltinRules inserts the shipped rule set; rules already present are
// left untouched so tenant (de)activation survives restarts.
func (c *Container) seedBuiltinRules(ctx context.Context) {
	for _, rule := range ruleengine.BuiltinRules() {
		if _, err := c.RuleStore.Get(ctx, rule.RuleID); err == nil {
			continue
		}
		if err := c.RuleStore.Create(ctx, &rule); err != nil {
			c.Logger.Warn("failed to seed built-in rule %s: %v", rule.RuleID, err)
		}
	}
}

func (c *Container) initMappingProvider() error {
	provider := migration.NewBuiltinProvider()
	if path := c.Config.Mappings.WorkbookPath; path != "" {
		loader := mappings.NewLoader(path)
		tables, err := loader.Load()
		if err != nil {
			return fmt.Errorf("failed to load mapping workbook: %w", err)
		}
		for _, table := range tables {
			provider.Overlay(table)
		}
		c.Logger.Info("overlaid %d mapping tables from %s", len(tables), path)
	}
	c.MappingProvider = provider
	return nil
}

// Close releases held resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
