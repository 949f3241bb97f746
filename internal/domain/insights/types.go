// Package insights computes the household's budgeting KPIs from a normalized
// snapshot: cashflow aggregates, the 50/30/20 verdict, emergency-fund
// coverage, the passive-income ratio, the financial phase, the Baby Step and
// the income-quadrant breakdown. Everything is a pure function of
// (snapshot, configuration); the service layer only adds identity, logging
// and tracing around the computation.
package insights

import (
	"time"

	"github.com/google/uuid"

	"github.com/alixwilliam/finplan/internal/domain/ledger"
	"github.com/alixwilliam/finplan/internal/domain/rules"
)

// MonthCashflow is one row of the monthly income/expense/net series.
// Month is a "2006-01" key; rows without a parseable date share the empty
// key and still count toward cumulative totals.
type MonthCashflow struct {
	Month        string `json:"month"`
	IncomeMinor  int64  `json:"income_minor"`
	ExpenseMinor int64  `json:"expense_minor"` // positive
	NetMinor     int64  `json:"net_minor"`
}

// BucketShare is a 50/30/20 bucket's expense total and its share of all
// categorized expense.
type BucketShare struct {
	Bucket      rules.Bucket `json:"bucket"`
	AmountMinor int64        `json:"amount_minor"`
	Share       float64      `json:"share"`
}

// QuadrantIncome is an income quadrant's total and its share of cumulative
// income.
type QuadrantIncome struct {
	Quadrant    rules.Quadrant `json:"quadrant"`
	AmountMinor int64          `json:"amount_minor"`
	Share       float64        `json:"share"`
}

// ProjectTypeTotal sums project budgets per project type.
type ProjectTypeTotal struct {
	Type             ledger.ProjectType `json:"type"`
	TotalBudgetMinor int64              `json:"total_budget_minor"`
	Count            int                `json:"count"`
}

// Aggregates holds every sum the classifier needs. Produced by Aggregate,
// all-zero (never an error) for an empty snapshot.
type Aggregates struct {
	Monthly []MonthCashflow

	CumulativeIncomeMinor  int64
	CumulativeExpenseMinor int64 // positive
	CumulativeBalanceMinor int64

	BucketTotals         []BucketShare
	TotalExpenseBucketed int64

	QuadrantTotals []QuadrantIncome

	ProjectTypeTotals []ProjectTypeTotal

	PassiveIncomeMinor     int64
	EmergencyRealizedMinor int64

	MonthsObserved int
}

// Phase is the household's coarse financial state.
type Phase string

const (
	PhaseStabilisation Phase = "Stabilisation"
	PhaseTransition    Phase = "Transition"
	PhaseExpansion     Phase = "Expansion"
)

// PortfolioQuadrant is the household-level quadrant reading derived from the
// per-quadrant income shares.
type PortfolioQuadrant string

const (
	PortfolioEmployee PortfolioQuadrant = "E"
	PortfolioBusiness PortfolioQuadrant = "S/B"
	PortfolioInvestor PortfolioQuadrant = "I"
	PortfolioMixed    PortfolioQuadrant = "Mixte"
)

// EmergencyFund is the coverage KPI triple.
type EmergencyFund struct {
	RealizedMinor int64   `json:"realized_minor"`
	RequiredMinor int64   `json:"required_minor"`
	Coverage      float64 `json:"coverage"`
}

// BudgetRule is the 50/30/20 verdict with its bucket shares.
type BudgetRule struct {
	NeedsShare   float64 `json:"needs_share"`
	WantsShare   float64 `json:"wants_share"`
	SavingsShare float64 `json:"savings_share"`
	OK           bool    `json:"ok"`
}

// Classification is the classifier's discrete output.
type Classification struct {
	Emergency            EmergencyFund     `json:"emergency"`
	PassiveIncomeMinor   int64             `json:"passive_income_minor"`
	PassiveRatio         float64           `json:"passive_ratio"`
	IndependenceAttained bool              `json:"independence_attained"`
	Rule                 BudgetRule        `json:"rule"`
	Phase                Phase             `json:"phase"`
	BabyStep             int               `json:"baby_step"`
	PortfolioQuadrant    PortfolioQuadrant `json:"portfolio_quadrant"`
}

// KPIBundle is the full engine output, recomputed on every call and never
// persisted. ID and ComputedAt belong to the orchestration layer; the pure
// computation below them is byte-identical for identical inputs.
type KPIBundle struct {
	ID         uuid.UUID `json:"id"`
	ComputedAt time.Time `json:"computed_at"`

	CumulativeIncomeMinor  int64 `json:"cumulative_income_minor"`
	CumulativeExpenseMinor int64 `json:"cumulative_expense_minor"`
	CumulativeBalanceMinor int64 `json:"cumulative_balance_minor"`

	Monthly []MonthCashflow `json:"monthly"`

	Emergency            EmergencyFund `json:"emergency"`
	PassiveIncomeMinor   int64         `json:"passive_income_minor"`
	PassiveRatio         float64       `json:"passive_ratio"`
	IndependenceAttained bool          `json:"independence_attained"`

	Buckets []BucketShare `json:"buckets"`
	Rule    BudgetRule    `json:"rule"`

	Phase    Phase `json:"phase"`
	BabyStep int   `json:"baby_step"`

	Quadrants         []QuadrantIncome  `json:"quadrants"`
	PortfolioQuadrant PortfolioQuadrant `json:"portfolio_quadrant"`

	ProjectTypes []ProjectTypeTotal `json:"project_types"`
}
