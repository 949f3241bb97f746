package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alixwilliam/finplan/internal/domain/ledger"
	"github.com/alixwilliam/finplan/internal/domain/rules"
)

func TestClassify_SingleSalaryAndRent(t *testing.T) {
	// One salary of 1,000,000, one rent of 400,000: balance 600,000,
	// everything needs, rule broken.
	txs := categorize(t, []ledger.Transaction{
		{Date: date(2025, 1, 5), AmountMinor: 1_000_000, Nature: ledger.NatureIncome, Source: "Salaire William", Category: "Salaire"},
		{Date: date(2025, 1, 6), AmountMinor: -400_000, Nature: ledger.NatureExpense, Category: "Loyer"},
	})
	agg := Aggregate(txs, nil)

	require.Equal(t, int64(1_000_000), agg.CumulativeIncomeMinor)
	require.Equal(t, int64(400_000), agg.CumulativeExpenseMinor)
	require.Equal(t, int64(600_000), agg.CumulativeBalanceMinor)

	cls := Classify(agg, rules.Default())
	assert.InDelta(t, 1.0, cls.Rule.NeedsShare, 1e-9)
	assert.False(t, cls.Rule.OK)
}

func TestClassify_AllPassiveIncomeAttainsIndependence(t *testing.T) {
	// All income is dividends: passive ratio 1.0 attains independence no
	// matter how large the expenses are.
	txs := categorize(t, []ledger.Transaction{
		{Date: date(2025, 1, 5), AmountMinor: 300_000, Nature: ledger.NatureIncome, Source: "Dividende IIBA"},
		{Date: date(2025, 1, 6), AmountMinor: 900_000, Nature: ledger.NatureExpense, Category: "Loyer"},
	})
	cls := Classify(Aggregate(txs, nil), rules.Default())

	assert.InDelta(t, 1.0, cls.PassiveRatio, 1e-9)
	assert.True(t, cls.IndependenceAttained)
}

func TestClassify_EmergencyRequiredIsMaxOfTargets(t *testing.T) {
	// Average monthly expense 500,000 over one month with a 3-month policy:
	// required = max(1,000,000, 1,500,000) = 1,500,000.
	cfg := rules.Default()
	agg := Aggregates{
		CumulativeExpenseMinor: 500_000,
		MonthsObserved:         1,
		EmergencyRealizedMinor: 200_000,
		CumulativeBalanceMinor: -500_000,
	}

	cls := Classify(agg, cfg)
	assert.Equal(t, int64(1_500_000), cls.Emergency.RequiredMinor)
	assert.InDelta(t, 200_000.0/1_500_000.0, cls.Emergency.Coverage, 1e-9)
	assert.Equal(t, PhaseStabilisation, cls.Phase)
}

func TestClassify_EmergencyFloorWinsWhenExpensesLow(t *testing.T) {
	cfg := rules.Default()
	agg := Aggregates{
		CumulativeExpenseMinor: 100_000,
		MonthsObserved:         1,
	}
	cls := Classify(agg, cfg)
	assert.Equal(t, int64(1_000_000), cls.Emergency.RequiredMinor)
}

func TestClassify_ZeroGuards(t *testing.T) {
	cls := Classify(Aggregates{}, rules.Default())

	assert.Equal(t, 0.0, cls.PassiveRatio)
	assert.Equal(t, 0.0, cls.Emergency.Coverage)
	// Required falls back to the absolute floor with no observed months.
	assert.Equal(t, int64(1_000_000), cls.Emergency.RequiredMinor)
	// No categorized expense: the rule is vacuously satisfied.
	assert.True(t, cls.Rule.OK)
	// No classified income reads as employee.
	assert.Equal(t, PortfolioEmployee, cls.PortfolioQuadrant)
}

func TestClassify_IndependenceAbsoluteCondition(t *testing.T) {
	// Passive covers cumulative expense even though the ratio is below 1.
	agg := Aggregates{
		CumulativeIncomeMinor:  1_000_000,
		PassiveIncomeMinor:     400_000,
		CumulativeExpenseMinor: 300_000,
	}
	cls := Classify(agg, rules.Default())
	assert.InDelta(t, 0.4, cls.PassiveRatio, 1e-9)
	assert.True(t, cls.IndependenceAttained)
}

func TestClassify_Phase(t *testing.T) {
	cfg := rules.Default()

	// Aggregates with full emergency coverage and positive balance.
	covered := func(passive int64) Aggregates {
		return Aggregates{
			CumulativeIncomeMinor:  1_000_000,
			PassiveIncomeMinor:     passive,
			CumulativeExpenseMinor: 100_000,
			CumulativeBalanceMinor: 900_000,
			MonthsObserved:         1,
			EmergencyRealizedMinor: 1_000_000,
		}
	}

	t.Run("negative balance forces stabilisation", func(t *testing.T) {
		agg := covered(900_000)
		agg.CumulativeBalanceMinor = -1
		assert.Equal(t, PhaseStabilisation, Classify(agg, cfg).Phase)
	})

	t.Run("low passive ratio is transition", func(t *testing.T) {
		assert.Equal(t, PhaseTransition, Classify(covered(100_000), cfg).Phase)
	})

	t.Run("ratio at threshold reaches expansion", func(t *testing.T) {
		assert.Equal(t, PhaseExpansion, Classify(covered(500_000), cfg).Phase)
	})
}

func TestClassify_BabyStepLadder(t *testing.T) {
	cfg := rules.Default()

	// Required = 1,500,000 → starter = min(1,000,000, 300,000) = 300,000.
	mk := func(realized int64) Aggregates {
		return Aggregates{
			CumulativeExpenseMinor: 500_000,
			MonthsObserved:         1,
			EmergencyRealizedMinor: realized,
		}
	}

	tests := []struct {
		name     string
		realized int64
		want     int
	}{
		{name: "below starter", realized: 299_999, want: 1},
		{name: "at starter moves to step 3", realized: 300_000, want: 3},
		{name: "just below required", realized: 1_499_999, want: 3},
		{name: "at required reaches step 4", realized: 1_500_000, want: 4},
		{name: "above required", realized: 2_000_000, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(mk(tt.realized), cfg).BabyStep)
		})
	}
}

func TestClassify_PortfolioQuadrant(t *testing.T) {
	cfg := rules.Default()

	mk := func(salary, self, business, investor, other int64) Aggregates {
		return Aggregates{
			QuadrantTotals: []QuadrantIncome{
				{Quadrant: rules.QuadrantEmployee, AmountMinor: salary},
				{Quadrant: rules.QuadrantSelfEmployed, AmountMinor: self},
				{Quadrant: rules.QuadrantBusiness, AmountMinor: business},
				{Quadrant: rules.QuadrantInvestor, AmountMinor: investor},
				{Quadrant: rules.QuadrantOther, AmountMinor: other},
			},
		}
	}

	tests := []struct {
		name string
		agg  Aggregates
		want PortfolioQuadrant
	}{
		{name: "salary dominated", agg: mk(80, 10, 0, 10, 0), want: PortfolioEmployee},
		{name: "salary exactly at threshold is not dominant", agg: mk(70, 10, 10, 10, 0), want: PortfolioMixed},
		{name: "business dominated combines S and B", agg: mk(30, 30, 25, 15, 0), want: PortfolioBusiness},
		{name: "investor dominated", agg: mk(30, 10, 10, 50, 0), want: PortfolioInvestor},
		{name: "other income excluded from denominator", agg: mk(80, 10, 0, 10, 1_000), want: PortfolioEmployee},
		{name: "balanced is mixed", agg: mk(40, 20, 10, 30, 0), want: PortfolioMixed},
		{name: "no classified income defaults to employee", agg: mk(0, 0, 0, 0, 500), want: PortfolioEmployee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.agg, cfg).PortfolioQuadrant)
		})
	}
}

func TestClassify_RuleBoundaries(t *testing.T) {
	cfg := rules.Default()

	mk := func(needs, wants, savings int64) Aggregates {
		total := needs + wants + savings
		return Aggregates{
			TotalExpenseBucketed: total,
			BucketTotals: []BucketShare{
				{Bucket: rules.BucketNeeds, AmountMinor: needs, Share: ratio(needs, total)},
				{Bucket: rules.BucketWants, AmountMinor: wants, Share: ratio(wants, total)},
				{Bucket: rules.BucketSavings, AmountMinor: savings, Share: ratio(savings, total)},
				{Bucket: rules.BucketOther},
			},
		}
	}

	t.Run("shares exactly at tolerances pass", func(t *testing.T) {
		cls := Classify(mk(55, 30, 15), cfg)
		assert.True(t, cls.Rule.OK)
	})

	t.Run("wants above tolerance fails", func(t *testing.T) {
		cls := Classify(mk(45, 40, 15), cfg)
		assert.False(t, cls.Rule.OK)
	})

	t.Run("savings below minimum fails", func(t *testing.T) {
		cls := Classify(mk(55, 35, 10), cfg)
		assert.False(t, cls.Rule.OK)
	})
}

func TestClassify_Deterministic(t *testing.T) {
	txs := categorize(t, []ledger.Transaction{
		{Date: date(2025, 1, 5), AmountMinor: 1_000_000, Nature: ledger.NatureIncome, Source: "Salaire William"},
		{Date: date(2025, 2, 5), AmountMinor: 200_000, Nature: ledger.NatureIncome, Source: "Location studio"},
		{Date: date(2025, 1, 6), AmountMinor: 400_000, Nature: ledger.NatureExpense, Category: "Loyer"},
	})
	agg := Aggregate(txs, nil)
	cfg := rules.Default()

	first := Classify(agg, cfg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(agg, cfg))
	}
}
