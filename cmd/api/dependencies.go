package main

import (
	"fmt"
	"log/slog"
	"os"

	advisoryhandler "github.com/alixwilliam/finplan/internal/domain/advisory/handler"
	"github.com/alixwilliam/finplan/internal/domain/dataset"
	importhandler "github.com/alixwilliam/finplan/internal/domain/import/handler"
	"github.com/alixwilliam/finplan/internal/domain/import/parser"
	importservice "github.com/alixwilliam/finplan/internal/domain/import/service"
	"github.com/alixwilliam/finplan/internal/domain/insights"
	insightshandler "github.com/alixwilliam/finplan/internal/domain/insights/handler"
	"github.com/alixwilliam/finplan/internal/domain/rules"
	"github.com/alixwilliam/finplan/internal/server"
	"github.com/alixwilliam/finplan/pkg/config"
	"github.com/alixwilliam/finplan/pkg/cron"
	"github.com/alixwilliam/finplan/pkg/storage"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	Store       *dataset.Store
	FileStorage storage.Storage

	// Services
	ImportService   *importservice.ImportService
	InsightsService *insights.Service

	// Handlers
	ImportHandler   *importhandler.ImportHandler
	InsightsHandler *insightshandler.InsightsHandler
	AdvisoryHandler *advisoryhandler.AdvisoryHandler

	Scheduler *cron.Scheduler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initStore(); err != nil {
		return nil, fmt.Errorf("failed to init data store: %w", err)
	}
	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	if err := deps.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}
	return deps, nil
}

// initStore sets up the in-memory data set and loads a rules override file
// when one is configured.
func (d *Dependencies) initStore() error {
	d.Store = dataset.NewStore()

	if path := d.Config.Rules.Path; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open rules config %s: %w", path, err)
		}
		defer f.Close()

		cfg, err := rules.LoadJSON(f)
		if err != nil {
			return fmt.Errorf("failed to load rules config %s: %w", path, err)
		}
		d.Store.SetConfig(cfg)
		d.Logger.Info("loaded rules config", slog.String("path", path))
	}
	return nil
}

func (d *Dependencies) initServices() error {
	d.InsightsService = insights.NewService(d.Logger)
	d.ImportService = importservice.NewImportService(parser.NewParser(parser.Config{}), d.Logger)

	if d.Config.Export.Enabled {
		st, err := storage.New(&storage.Config{LocalPath: d.Config.Export.Dir})
		if err != nil {
			return fmt.Errorf("failed to init export storage: %w", err)
		}
		d.FileStorage = st
		d.Scheduler = cron.NewScheduler(
			d.Config.Export.CronSchedule,
			d.Store,
			d.InsightsService,
			st,
			d.Logger,
		)
	}
	return nil
}

func (d *Dependencies) initHandlers() error {
	d.ImportHandler = importhandler.NewImportHandler(d.ImportService, d.Store, d.Logger)
	d.InsightsHandler = insightshandler.NewInsightsHandler(d.InsightsService, d.Store, d.Logger)
	d.AdvisoryHandler = advisoryhandler.NewAdvisoryHandler(d.InsightsService, d.Store, d.Logger)
	return nil
}

// Handlers groups the handlers for the router.
func (d *Dependencies) Handlers() server.Handlers {
	return server.Handlers{
		Insights: d.InsightsHandler,
		Advisory: d.AdvisoryHandler,
		Import:   d.ImportHandler,
	}
}
