// Package service provides the import orchestration logic: parse the
// uploaded CSV, normalize it into the ledger, and report what happened.
package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/alixwilliam/finplan/internal/domain/import/parser"
	"github.com/alixwilliam/finplan/internal/domain/ledger"
)

// ImportResult reports the outcome of an import operation.
type ImportResult struct {
	JobID      uuid.UUID `json:"job_id"`
	RowsTotal  int       `json:"rows_total"`
	RowsLoaded int       `json:"rows_loaded"`
	Undated    int       `json:"undated_rows"`
	StartedAt  time.Time `json:"started_at"`
	Duration   string    `json:"duration"`
}

// ImportService parses and normalizes uploaded ledgers.
type ImportService struct {
	parser *parser.Parser
	logger *slog.Logger
	tracer trace.Tracer
}

// NewImportService creates the import service.
func NewImportService(p *parser.Parser, logger *slog.Logger) *ImportService {
	return &ImportService{
		parser: p,
		logger: logger,
		tracer: otel.Tracer("finplan/import"),
	}
}

// ImportTransactions parses a transaction CSV and normalizes every row.
// Rows are never rejected; unparseable amounts become zero and unparseable
// dates become undated, both counted in the result.
func (s *ImportService) ImportTransactions(ctx context.Context, r io.Reader) ([]ledger.Transaction, *ImportResult, error) {
	ctx, span := s.tracer.Start(ctx, "import.transactions")
	defer span.End()

	start := time.Now()
	raws, parseRes, err := s.parser.ParseTransactions(r)
	if err != nil {
		s.logger.ErrorContext(ctx, "transaction import failed", slog.Any("error", err))
		return nil, nil, err
	}

	txs := ledger.NormalizeTransactions(raws)

	undated := 0
	for _, tx := range txs {
		if tx.Date == nil {
			undated++
		}
	}

	result := &ImportResult{
		JobID:      uuid.New(),
		RowsTotal:  parseRes.TotalRows,
		RowsLoaded: len(txs),
		Undated:    undated,
		StartedAt:  start.UTC(),
		Duration:   time.Since(start).String(),
	}

	span.SetAttributes(
		attribute.Int("import.rows_total", result.RowsTotal),
		attribute.Int("import.rows_undated", result.Undated),
	)
	s.logger.InfoContext(ctx, "transactions imported",
		slog.String("job_id", result.JobID.String()),
		slog.Int("rows", result.RowsLoaded),
		slog.Int("undated", undated),
	)
	return txs, result, nil
}

// ImportProjects parses a project CSV and normalizes every row.
func (s *ImportService) ImportProjects(ctx context.Context, r io.Reader) ([]ledger.Project, *ImportResult, error) {
	ctx, span := s.tracer.Start(ctx, "import.projects")
	defer span.End()

	start := time.Now()
	raws, parseRes, err := s.parser.ParseProjects(r)
	if err != nil {
		s.logger.ErrorContext(ctx, "project import failed", slog.Any("error", err))
		return nil, nil, err
	}

	projects := ledger.NormalizeProjects(raws)

	result := &ImportResult{
		JobID:      uuid.New(),
		RowsTotal:  parseRes.TotalRows,
		RowsLoaded: len(projects),
		StartedAt:  start.UTC(),
		Duration:   time.Since(start).String(),
	}

	span.SetAttributes(attribute.Int("import.rows_total", result.RowsTotal))
	s.logger.InfoContext(ctx, "projects imported",
		slog.String("job_id", result.JobID.String()),
		slog.Int("rows", result.RowsLoaded),
	)
	return projects, result, nil
}
