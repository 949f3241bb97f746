// Package cron runs the scheduled workbook export using robfig/cron.
package cron

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/alixwilliam/finplan/internal/domain/advisory"
	"github.com/alixwilliam/finplan/internal/domain/dataset"
	"github.com/alixwilliam/finplan/internal/domain/export"
	"github.com/alixwilliam/finplan/internal/domain/insights"
	"github.com/alixwilliam/finplan/pkg/storage"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Scheduler snapshots the KPI workbook to artifact storage on a schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	store    *dataset.Store
	insights *insights.Service
	storage  storage.Storage
	logger   *slog.Logger
}

// NewScheduler creates the export scheduler. schedule is a standard 5-field
// cron expression.
func NewScheduler(schedule string, store *dataset.Store, svc *insights.Service, st storage.Storage, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:     c,
		schedule: schedule,
		store:    store,
		insights: svc,
		storage:  st,
		logger:   logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.exportWorkbook); err != nil {
		return fmt.Errorf("invalid export schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.String("schedule", s.schedule),
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the export (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.exportWorkbook()
}

// exportWorkbook renders the current data set's workbook and saves it.
func (s *Scheduler) exportWorkbook() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if s.store.IsEmpty() {
		s.logger.Debug("skipping scheduled export, no data loaded")
		return
	}

	snap := s.store.Snapshot()
	cfg := s.store.Config()

	bundle, err := s.insights.ComputeKPIs(ctx, snap, cfg)
	if err != nil {
		s.logger.Error("scheduled export failed to compute KPIs", slog.Any("error", err))
		return
	}
	cls, err := s.insights.ComputeClassification(ctx, snap, cfg)
	if err != nil {
		s.logger.Error("scheduled export failed to classify", slog.Any("error", err))
		return
	}

	var buf bytes.Buffer
	advice := advisory.AdviseAll(snap.Projects, cls, cfg)
	if err := export.Workbook(&buf, bundle, advice); err != nil {
		s.logger.Error("scheduled export failed to render workbook", slog.Any("error", err))
		return
	}

	filename := fmt.Sprintf("plan-financier-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	info, err := s.storage.Save(ctx, filename, workbookContentType, &buf)
	if err != nil {
		s.logger.Error("scheduled export failed to save workbook", slog.Any("error", err))
		return
	}

	s.logger.Info("scheduled export completed",
		slog.String("file_id", info.ID.String()),
		slog.String("name", info.Name),
		slog.Int64("size", info.Size),
	)
}
