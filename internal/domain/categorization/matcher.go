package categorization

import (
	"strings"

	"github.com/alixwilliam/finplan/internal/domain/ledger"
	"github.com/alixwilliam/finplan/internal/domain/rules"
)

// ContainsAny reports whether text contains any of the keywords,
// case-insensitively. This is the single matching primitive behind passive
// income detection, emergency fund recognition and quadrant assignment.
func ContainsAny(text string, keywords []string) bool {
	if text == "" || len(keywords) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		k := strings.ToLower(strings.TrimSpace(keyword))
		if k == "" {
			continue
		}
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// IsPassiveIncome reports whether a transaction is passive income: an income
// row whose source mentions a configured passive keyword.
func IsPassiveIncome(tx ledger.Transaction, cfg rules.Config) bool {
	return tx.Nature == ledger.NatureIncome && ContainsAny(tx.Source, cfg.PassiveKeywords)
}

// IsEmergencyContribution reports whether an income row feeds the emergency
// fund (category mentions an urgency/savings keyword).
func IsEmergencyContribution(tx ledger.Transaction, cfg rules.Config) bool {
	return tx.Nature == ledger.NatureIncome && ContainsAny(tx.Category, cfg.EmergencyKeywords)
}

// QuadrantOf assigns an income source to a cashflow quadrant, matching the
// configured keyword lists in the fixed E → S → B → I order. Sources matching
// nothing land in the Other quadrant bucket; that is a classification result,
// not a failure.
func QuadrantOf(source string, cfg rules.Config) rules.Quadrant {
	for _, quadrant := range rules.QuadrantOrder {
		if ContainsAny(source, cfg.QuadrantKeywords[quadrant]) {
			return quadrant
		}
	}
	return rules.QuadrantOther
}
