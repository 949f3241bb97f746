package insights

import (
	"sort"

	"github.com/alixwilliam/finplan/internal/domain/categorization"
	"github.com/alixwilliam/finplan/internal/domain/ledger"
	"github.com/alixwilliam/finplan/internal/domain/rules"
)

// bucketListOrder fixes the display order of bucket totals.
var bucketListOrder = []rules.Bucket{rules.BucketNeeds, rules.BucketWants, rules.BucketSavings, rules.BucketOther}

// quadrantListOrder fixes the display order of quadrant totals.
var quadrantListOrder = []rules.Quadrant{
	rules.QuadrantEmployee,
	rules.QuadrantSelfEmployed,
	rules.QuadrantBusiness,
	rules.QuadrantInvestor,
	rules.QuadrantOther,
}

// projectTypeOrder fixes the display order of project type totals.
var projectTypeOrder = []ledger.ProjectType{
	ledger.ProjectGeneratingAsset,
	ledger.ProjectLiability,
	ledger.ProjectFormation,
}

// Aggregate computes every sum the classifier consumes: the monthly cashflow
// series, cumulative totals, bucket and quadrant totals and the per-type
// project budgets. An empty snapshot yields all-zero aggregates, never an
// error.
func Aggregate(txs []categorization.CategorizedTransaction, projects []ledger.Project) Aggregates {
	agg := Aggregates{}

	type monthSums struct {
		income  int64
		expense int64
	}
	months := make(map[string]*monthSums)
	bucketSums := make(map[rules.Bucket]int64)
	quadrantSums := make(map[rules.Quadrant]int64)

	for _, tx := range txs {
		key := tx.MonthKey()
		sums := months[key]
		if sums == nil {
			sums = &monthSums{}
			months[key] = sums
		}

		if tx.Nature == ledger.NatureIncome {
			sums.income += tx.AmountMinor
			agg.CumulativeIncomeMinor += tx.AmountMinor
			quadrantSums[tx.Quadrant] += tx.AmountMinor
			if tx.Passive {
				agg.PassiveIncomeMinor += tx.AmountMinor
			}
			if tx.Emergency {
				agg.EmergencyRealizedMinor += tx.AmountMinor
			}
			continue
		}

		// Expense rows are stored signed; totals carry the magnitude.
		amount := tx.AmountMinor
		if amount < 0 {
			amount = -amount
		}
		sums.expense += amount
		agg.CumulativeExpenseMinor += amount
		bucketSums[tx.Bucket] += amount
	}

	agg.CumulativeBalanceMinor = agg.CumulativeIncomeMinor - agg.CumulativeExpenseMinor

	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	agg.Monthly = make([]MonthCashflow, 0, len(keys))
	for _, key := range keys {
		sums := months[key]
		agg.Monthly = append(agg.Monthly, MonthCashflow{
			Month:        key,
			IncomeMinor:  sums.income,
			ExpenseMinor: sums.expense,
			NetMinor:     sums.income - sums.expense,
		})
	}
	agg.MonthsObserved = len(agg.Monthly)

	for _, bucket := range bucketListOrder {
		agg.TotalExpenseBucketed += bucketSums[bucket]
	}
	agg.BucketTotals = make([]BucketShare, 0, len(bucketListOrder))
	for _, bucket := range bucketListOrder {
		agg.BucketTotals = append(agg.BucketTotals, BucketShare{
			Bucket:      bucket,
			AmountMinor: bucketSums[bucket],
			Share:       ratio(bucketSums[bucket], agg.TotalExpenseBucketed),
		})
	}

	agg.QuadrantTotals = make([]QuadrantIncome, 0, len(quadrantListOrder))
	for _, quadrant := range quadrantListOrder {
		agg.QuadrantTotals = append(agg.QuadrantTotals, QuadrantIncome{
			Quadrant:    quadrant,
			AmountMinor: quadrantSums[quadrant],
			Share:       ratio(quadrantSums[quadrant], agg.CumulativeIncomeMinor),
		})
	}

	typeSums := make(map[ledger.ProjectType]int64)
	typeCounts := make(map[ledger.ProjectType]int)
	for _, p := range projects {
		typeSums[p.Type] += p.TotalBudgetMinor
		typeCounts[p.Type]++
	}
	agg.ProjectTypeTotals = make([]ProjectTypeTotal, 0, len(projectTypeOrder))
	for _, pt := range projectTypeOrder {
		agg.ProjectTypeTotals = append(agg.ProjectTypeTotals, ProjectTypeTotal{
			Type:             pt,
			TotalBudgetMinor: typeSums[pt],
			Count:            typeCounts[pt],
		})
	}

	return agg
}

// AverageMonthlyExpense is the mean of the monthly expense column, 0 when no
// months were observed.
func (a Aggregates) AverageMonthlyExpense() float64 {
	if a.MonthsObserved == 0 {
		return 0
	}
	return float64(a.CumulativeExpenseMinor) / float64(a.MonthsObserved)
}

// BucketShareOf returns a bucket's share of categorized expense.
func (a Aggregates) BucketShareOf(bucket rules.Bucket) float64 {
	for _, b := range a.BucketTotals {
		if b.Bucket == bucket {
			return b.Share
		}
	}
	return 0
}

// QuadrantTotalOf returns a quadrant's income total.
func (a Aggregates) QuadrantTotalOf(quadrant rules.Quadrant) int64 {
	for _, q := range a.QuadrantTotals {
		if q.Quadrant == quadrant {
			return q.AmountMinor
		}
	}
	return 0
}

// ratio divides two minor amounts, guarding the zero denominator: every
// ratio-valued KPI returns 0 rather than NaN or Inf.
func ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
