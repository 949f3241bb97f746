package insights

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/alixwilliam/finplan/internal/domain/categorization"
	"github.com/alixwilliam/finplan/internal/domain/ledger"
	"github.com/alixwilliam/finplan/internal/domain/rules"
)

// Service orchestrates the KPI pipeline: categorize, aggregate, classify.
// The pipeline itself is pure; the service adds validation, identity,
// logging and tracing around it.
type Service struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewService creates a new insights service.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
		tracer: otel.Tracer("finplan/insights"),
	}
}

// ComputeKPIs runs the full pipeline over an immutable snapshot with an
// explicit configuration. The configuration is validated up front so a bad
// configuration fails loudly instead of skewing the results. Degenerate
// inputs (empty snapshot, all-zero sums) still return a bundle.
func (s *Service) ComputeKPIs(ctx context.Context, snapshot ledger.Snapshot, cfg rules.Config) (*KPIBundle, error) {
	ctx, span := s.tracer.Start(ctx, "insights.ComputeKPIs",
		trace.WithAttributes(
			attribute.Int("snapshot.transactions", len(snapshot.Transactions)),
			attribute.Int("snapshot.projects", len(snapshot.Projects)),
		))
	defer span.End()

	if err := cfg.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	categorizer := categorization.NewCategorizer(cfg)
	categorized := categorizer.CategorizeAll(snapshot.Transactions)
	agg := Aggregate(categorized, snapshot.Projects)
	classification := Classify(agg, cfg)

	bundle := &KPIBundle{
		ID:         uuid.New(),
		ComputedAt: time.Now().UTC(),

		CumulativeIncomeMinor:  agg.CumulativeIncomeMinor,
		CumulativeExpenseMinor: agg.CumulativeExpenseMinor,
		CumulativeBalanceMinor: agg.CumulativeBalanceMinor,

		Monthly: agg.Monthly,

		Emergency:            classification.Emergency,
		PassiveIncomeMinor:   classification.PassiveIncomeMinor,
		PassiveRatio:         classification.PassiveRatio,
		IndependenceAttained: classification.IndependenceAttained,

		Buckets: agg.BucketTotals,
		Rule:    classification.Rule,

		Phase:    classification.Phase,
		BabyStep: classification.BabyStep,

		Quadrants:         agg.QuadrantTotals,
		PortfolioQuadrant: classification.PortfolioQuadrant,

		ProjectTypes: agg.ProjectTypeTotals,
	}

	s.logger.InfoContext(ctx, "kpi bundle computed",
		slog.String("bundle_id", bundle.ID.String()),
		slog.String("phase", string(bundle.Phase)),
		slog.Int("baby_step", bundle.BabyStep),
		slog.Int("months", agg.MonthsObserved),
	)

	return bundle, nil
}

// ComputeClassification runs the pipeline but returns only the discrete
// classification, for callers (like the advisory generator) that don't need
// the full bundle.
func (s *Service) ComputeClassification(ctx context.Context, snapshot ledger.Snapshot, cfg rules.Config) (Classification, error) {
	_, span := s.tracer.Start(ctx, "insights.ComputeClassification")
	defer span.End()

	if err := cfg.Validate(); err != nil {
		span.RecordError(err)
		return Classification{}, err
	}

	categorizer := categorization.NewCategorizer(cfg)
	categorized := categorizer.CategorizeAll(snapshot.Transactions)
	agg := Aggregate(categorized, snapshot.Projects)
	return Classify(agg, cfg), nil
}
