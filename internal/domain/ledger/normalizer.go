package ledger

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/alixwilliam/finplan/pkg/money"
)

// RawField is a loosely typed record field. It unmarshals from JSON strings,
// numbers, booleans and null so the same raw record type serves both CSV rows
// and API payloads.
type RawField string

// UnmarshalJSON accepts any scalar JSON value and keeps its textual form.
func (f *RawField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = RawField(s)
		return nil
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	*f = RawField(trimmed)
	return nil
}

func (f RawField) String() string { return strings.TrimSpace(string(f)) }

// RawTransaction is a transaction-like record as supplied by imports or API
// callers, before any cleaning.
type RawTransaction struct {
	Date     RawField `json:"date"`
	Amount   RawField `json:"amount"`
	Category RawField `json:"category"`
	Source   RawField `json:"source"`
	Nature   RawField `json:"nature"`
}

// RawProject is a project-like record before cleaning.
type RawProject struct {
	Name            RawField `json:"name"`
	Type            RawField `json:"type"`
	TotalBudget     RawField `json:"total_budget"`
	Contributed     RawField `json:"contributed_budget"`
	ExpectedROIPct  RawField `json:"expected_roi_pct"`
	DueDate         RawField `json:"due_date"`
	Status          RawField `json:"status"`
	Category        RawField `json:"category"`
	Priority        RawField `json:"priority"`
	MonthlyCashflow RawField `json:"monthly_cashflow"`
}

// dateLayouts covers the formats seen in the family's spreadsheets.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02.01.2006",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate parses a raw date string against the known layouts. Unparseable
// or empty input yields nil, never an error.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// NormalizeTransaction cleans a single raw row: amount coerced to minor units
// (invalid degrades to 0), date parsed (invalid degrades to nil), nature
// inferred from the amount sign when absent, missing strings defaulted to "".
// No input is ever rejected; dirty spreadsheets must not sink the whole
// computation.
func NormalizeTransaction(raw RawTransaction) Transaction {
	tx := Transaction{
		Date:        ParseDate(raw.Date.String()),
		AmountMinor: money.LenientMinor(raw.Amount.String(), money.XAF),
		Category:    raw.Category.String(),
		Source:      raw.Source.String(),
	}

	switch normalizeNature(raw.Nature.String()) {
	case NatureIncome:
		tx.Nature = NatureIncome
	case NatureExpense:
		tx.Nature = NatureExpense
	default:
		if tx.AmountMinor >= 0 {
			tx.Nature = NatureIncome
		} else {
			tx.Nature = NatureExpense
		}
	}
	return tx
}

func normalizeNature(raw string) Nature {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "revenu", "revenus", "income":
		return NatureIncome
	case "dépense", "depense", "dépenses", "depenses", "expense":
		return NatureExpense
	}
	return ""
}

// NormalizeTransactions cleans every row; no row is dropped.
func NormalizeTransactions(raws []RawTransaction) []Transaction {
	txs := make([]Transaction, len(raws))
	for i, raw := range raws {
		txs[i] = NormalizeTransaction(raw)
	}
	return txs
}

// NormalizeProject cleans a single raw project row with the same lenient
// policy as transactions.
func NormalizeProject(raw RawProject) Project {
	roi := 0.0
	if d, err := money.ParseDecimal(raw.ExpectedROIPct.String()); err == nil {
		roi = d.InexactFloat64()
	}
	return Project{
		Name:                 raw.Name.String(),
		Type:                 normalizeProjectType(raw.Type.String()),
		TotalBudgetMinor:     money.LenientMinor(raw.TotalBudget.String(), money.XAF),
		ContributedMinor:     money.LenientMinor(raw.Contributed.String(), money.XAF),
		ExpectedROIPct:       roi,
		DueDate:              ParseDate(raw.DueDate.String()),
		Status:               raw.Status.String(),
		Category:             raw.Category.String(),
		Priority:             raw.Priority.String(),
		MonthlyCashflowMinor: money.LenientMinor(raw.MonthlyCashflow.String(), money.XAF),
	}
}

func normalizeProjectType(raw string) ProjectType {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lower, "actif"), strings.Contains(lower, "asset"):
		return ProjectGeneratingAsset
	case strings.Contains(lower, "formation"), strings.Contains(lower, "éducation"), strings.Contains(lower, "education"):
		return ProjectFormation
	default:
		return ProjectLiability
	}
}

// NormalizeProjects cleans every project row.
func NormalizeProjects(raws []RawProject) []Project {
	projects := make([]Project, len(raws))
	for i, raw := range raws {
		projects[i] = NormalizeProject(raw)
	}
	return projects
}

// NormalizeSnapshot builds a canonical snapshot from raw records.
func NormalizeSnapshot(txs []RawTransaction, projects []RawProject) Snapshot {
	return Snapshot{
		Transactions: NormalizeTransactions(txs),
		Projects:     NormalizeProjects(projects),
	}
}
