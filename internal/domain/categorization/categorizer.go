// Package categorization derives the classification views of ledger rows:
// the 50/30/20 bucket, the passive-income flag and the income quadrant. All
// derivations are pure functions of (row, configuration); rebuilding with a
// new configuration recomputes every view.
package categorization

import (
	"github.com/alixwilliam/finplan/internal/domain/ledger"
	"github.com/alixwilliam/finplan/internal/domain/rules"
)

// CategorizedTransaction is a ledger row plus its derived classification
// views. The views are recomputed whenever the configuration changes; they
// are never stored back onto the row.
type CategorizedTransaction struct {
	ledger.Transaction

	Bucket    rules.Bucket   `json:"bucket"`
	Passive   bool           `json:"passive"`
	Emergency bool           `json:"emergency"`
	Quadrant  rules.Quadrant `json:"quadrant,omitempty"` // income rows only
}

// Categorizer derives classification views for a fixed configuration.
type Categorizer struct {
	engine *Engine
	fuzzy  *FuzzyMatcher
	cfg    rules.Config
}

// NewCategorizer builds a categorizer for the given configuration.
func NewCategorizer(cfg rules.Config) *Categorizer {
	return &Categorizer{
		engine: NewEngine(cfg),
		fuzzy:  NewFuzzyMatcher(cfg),
		cfg:    cfg,
	}
}

// Config returns the configuration the categorizer was built with.
func (c *Categorizer) Config() rules.Config { return c.cfg }

// Categorize derives the views for a single row.
func (c *Categorizer) Categorize(tx ledger.Transaction) CategorizedTransaction {
	out := CategorizedTransaction{
		Transaction: tx,
		Bucket:      c.engine.Match(tx.Category),
		Passive:     IsPassiveIncome(tx, c.cfg),
		Emergency:   IsEmergencyContribution(tx, c.cfg),
	}
	if tx.Nature == ledger.NatureIncome {
		out.Quadrant = QuadrantOf(tx.Source, c.cfg)
	}
	return out
}

// CategorizeAll derives the views for every row. Rows are independent, so the
// result order matches the input order.
func (c *Categorizer) CategorizeAll(txs []ledger.Transaction) []CategorizedTransaction {
	out := make([]CategorizedTransaction, len(txs))
	for i, tx := range txs {
		out[i] = c.Categorize(tx)
	}
	return out
}

// SuggestBucket proposes close-match buckets for a category that landed in
// Other, to help users fix keyword lists after a dirty import.
func (c *Categorizer) SuggestBucket(category string, limit int) []Suggestion {
	return c.fuzzy.Suggest(category, limit)
}
