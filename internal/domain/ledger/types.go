// Package ledger defines the canonical in-memory records the engine computes
// over: transactions, projects and the snapshot bundling them. Records are
// normalized once at the boundary; downstream packages never see missing or
// malformed fields.
package ledger

import (
	"strings"
	"time"
)

// Nature tells whether a transaction is money in or money out.
type Nature string

const (
	NatureIncome  Nature = "Revenu"
	NatureExpense Nature = "Dépense"
)

// Transaction is a single normalized ledger row. Amounts are signed minor
// units: >= 0 is income, < 0 is expense.
type Transaction struct {
	Date        *time.Time `json:"date"`
	AmountMinor int64      `json:"amount_minor"`
	Category    string     `json:"category"`
	Source      string     `json:"source"`
	Nature      Nature     `json:"nature"`
}

// MonthKey returns the calendar year-month the row belongs to ("2025-01").
// Rows without a parseable date share the empty key so they still take part
// in cumulative totals.
func (t Transaction) MonthKey() string {
	if t.Date == nil {
		return ""
	}
	return t.Date.Format("2006-01")
}

// ProjectType classifies a discretionary project.
type ProjectType string

const (
	ProjectGeneratingAsset ProjectType = "Actif générateur"
	ProjectLiability       ProjectType = "Passif"
	ProjectFormation       ProjectType = "Formation"
)

// Stance is the binary asset-or-liability reading of a project type.
type Stance string

const (
	StanceAsset     Stance = "Actif"
	StanceLiability Stance = "Passif"
)

// Project is a normalized discretionary project snapshot row.
type Project struct {
	Name                 string      `json:"name"`
	Type                 ProjectType `json:"type"`
	TotalBudgetMinor     int64       `json:"total_budget_minor"`
	ContributedMinor     int64       `json:"contributed_minor"`
	ExpectedROIPct       float64     `json:"expected_roi_pct"`
	DueDate              *time.Time  `json:"due_date"`
	Status               string      `json:"status"`
	Category             string      `json:"category"`
	Priority             string      `json:"priority"`
	MonthlyCashflowMinor int64       `json:"monthly_cashflow_minor"`
}

// Progress returns contributed/total in [0, +inf), 0 when the total budget
// is 0.
func (p Project) Progress() float64 {
	if p.TotalBudgetMinor == 0 {
		return 0
	}
	return float64(p.ContributedMinor) / float64(p.TotalBudgetMinor)
}

// Stance derives the asset-or-liability reading from the project type:
// anything whose type mentions an asset counts as an asset, everything else
// (liabilities, formation spend) as a liability, matching the plan's
// feasibility table.
func (p Project) Stance() Stance {
	if strings.Contains(strings.ToLower(string(p.Type)), "actif") {
		return StanceAsset
	}
	return StanceLiability
}

// Snapshot is the immutable dataset a computation runs over. Callers must not
// mutate it while a computation is in flight; the engine itself never does.
type Snapshot struct {
	Transactions []Transaction `json:"transactions"`
	Projects     []Project     `json:"projects"`
}
