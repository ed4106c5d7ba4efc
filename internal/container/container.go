package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hrdash/adapters/excel"
	"hrdash/adapters/postgres"
	"hrdash/app"
	"hrdash/internal"
	"hrdash/internal/config"
	"hrdash/internal/dataset"
	"hrdash/internal/importance"
	"hrdash/ports"
)

// Container holds the application dependencies shared by every binary
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure, only set for the postgres source
	DB *sqlx.DB

	Source    ports.TableSourcePort
	Loader    *dataset.Loader
	Ranker    *importance.Ranker
	Dashboard *app.DashboardService
}

// New wires the table source, loader, ranker and dashboard service.
// Nothing is read until Warm or the first render.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level))
	c := &Container{Config: cfg, Logger: logger}

	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := postgres.Connect(ctx, cfg.Data.DatabaseURL)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Source = postgres.NewEmployeeSource(db, cfg.Data.Table)
	default:
		c.Source = excel.NewDataReader(cfg.Data.File)
	}

	c.Loader = dataset.NewLoader(c.Source, logger)
	c.Ranker = importance.NewRanker(importance.Config{
		Trees:     cfg.Ranker.Trees,
		Seed:      cfg.Ranker.Seed,
		TopN:      cfg.Ranker.TopN,
		CacheSize: cfg.Ranker.CacheSize,
	}, logger)
	c.Dashboard = app.NewDashboardService(c.Loader, c.Ranker, logger)

	logger.With("Container").Info("wired %s", c.Source.Describe())
	return c, nil
}

// Warm loads the employee table eagerly so a missing source fails at startup
func (c *Container) Warm(ctx context.Context) (*dataset.Table, error) {
	return c.Loader.Load(ctx)
}

// Shutdown releases the database connection, if any
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
