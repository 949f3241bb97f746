package insights

import (
	"math"

	"github.com/alixwilliam/finplan/internal/domain/rules"
)

// Classify derives every discrete KPI from the aggregates. The function is
// pure and deterministic: identical aggregates and configuration always
// produce an identical classification.
func Classify(agg Aggregates, cfg rules.Config) Classification {
	emergency := classifyEmergency(agg, cfg)
	passiveRatio := ratio(agg.PassiveIncomeMinor, agg.CumulativeIncomeMinor)

	return Classification{
		Emergency:            emergency,
		PassiveIncomeMinor:   agg.PassiveIncomeMinor,
		PassiveRatio:         passiveRatio,
		IndependenceAttained: classifyIndependence(agg, passiveRatio, cfg),
		Rule:                 classifyRule(agg, cfg),
		Phase:                classifyPhase(agg, emergency, passiveRatio, cfg),
		BabyStep:             classifyBabyStep(emergency, cfg),
		PortfolioQuadrant:    classifyPortfolioQuadrant(agg, cfg),
	}
}

// classifyEmergency computes required, realized and coverage. Required is the
// larger of the configured absolute target and the months-of-expense target.
func classifyEmergency(agg Aggregates, cfg rules.Config) EmergencyFund {
	monthsTarget := float64(cfg.EmergencyTargetMonths) * agg.AverageMonthlyExpense()
	required := math.Max(float64(cfg.EmergencyTargetMinor), monthsTarget)
	requiredMinor := int64(math.Round(required))

	return EmergencyFund{
		RealizedMinor: agg.EmergencyRealizedMinor,
		RequiredMinor: requiredMinor,
		Coverage:      ratio(agg.EmergencyRealizedMinor, requiredMinor),
	}
}

// classifyIndependence evaluates the absolute and the relative condition;
// either one attains independence. Both operands are always computed; each
// can flip the result on its own.
func classifyIndependence(agg Aggregates, passiveRatio float64, cfg rules.Config) bool {
	absolute := agg.PassiveIncomeMinor >= agg.CumulativeExpenseMinor
	relative := passiveRatio >= cfg.IndependenceTargetRatio
	return absolute || relative
}

// classifyRule checks the 50/30/20 tolerances on the bucket shares. With no
// categorized expense every share is 0 and the rule is vacuously satisfied.
func classifyRule(agg Aggregates, cfg rules.Config) BudgetRule {
	rule := BudgetRule{
		NeedsShare:   agg.BucketShareOf(rules.BucketNeeds),
		WantsShare:   agg.BucketShareOf(rules.BucketWants),
		SavingsShare: agg.BucketShareOf(rules.BucketSavings),
	}
	if agg.TotalExpenseBucketed == 0 {
		rule.OK = true
		return rule
	}
	rule.OK = rule.NeedsShare <= cfg.RuleNeedsMax &&
		rule.WantsShare <= cfg.RuleWantsMax &&
		rule.SavingsShare >= cfg.RuleSavingsMin
	return rule
}

// classifyPhase walks the three branches in priority order; the first match
// wins.
func classifyPhase(agg Aggregates, emergency EmergencyFund, passiveRatio float64, cfg rules.Config) Phase {
	if emergency.Coverage < 1.0 || agg.CumulativeBalanceMinor < 0 {
		return PhaseStabilisation
	}
	if passiveRatio < cfg.PhasePassiveRatioMin {
		return PhaseTransition
	}
	return PhaseExpansion
}

// classifyBabyStep applies the three-level ladder with strict comparisons:
// below the starter threshold (the smaller of the configured floor and a
// fraction of the requirement) is step 1, below the full requirement is
// step 3, at or above it is step 4.
func classifyBabyStep(emergency EmergencyFund, cfg rules.Config) int {
	starter := math.Min(
		float64(cfg.BabyStepFloorMinor),
		float64(emergency.RequiredMinor)*cfg.BabyStepStarterFraction,
	)
	switch {
	case float64(emergency.RealizedMinor) < starter:
		return 1
	case emergency.RealizedMinor < emergency.RequiredMinor:
		return 3
	default:
		return 4
	}
}

// classifyPortfolioQuadrant reads the household quadrant off the classified
// income shares (the Other quadrant is excluded from the denominator, as in
// the plan's revenue table). A household with no classified income reads as
// an employee, wholly dependent on the next salary.
func classifyPortfolioQuadrant(agg Aggregates, cfg rules.Config) PortfolioQuadrant {
	salary := agg.QuadrantTotalOf(rules.QuadrantEmployee)
	business := agg.QuadrantTotalOf(rules.QuadrantSelfEmployed) + agg.QuadrantTotalOf(rules.QuadrantBusiness)
	investor := agg.QuadrantTotalOf(rules.QuadrantInvestor)

	total := salary + business + investor
	if total == 0 {
		return PortfolioEmployee
	}

	switch {
	case ratio(salary, total) > cfg.QuadrantSalaryShare:
		return PortfolioEmployee
	case ratio(business, total) > cfg.QuadrantBusinessShare:
		return PortfolioBusiness
	case ratio(investor, total) > cfg.QuadrantInvestorShare:
		return PortfolioInvestor
	default:
		return PortfolioMixed
	}
}
