package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/alixwilliam/finplan/internal/domain/insights"
)

// cashflowRow is the CSV projection of one month of the cashflow series.
type cashflowRow struct {
	Month        string `csv:"Mois"`
	IncomeMinor  int64  `csv:"Revenus"`
	ExpenseMinor int64  `csv:"Depenses"`
	NetMinor     int64  `csv:"Net"`
}

// MonthlyCashflowCSV writes the monthly income/expense/net series as CSV.
// Undated rows appear under the label "Sans date".
func MonthlyCashflowCSV(w io.Writer, bundle *insights.KPIBundle) error {
	rows := make([]cashflowRow, 0, len(bundle.Monthly))
	for _, m := range bundle.Monthly {
		month := m.Month
		if month == "" {
			month = "Sans date"
		}
		rows = append(rows, cashflowRow{
			Month:        month,
			IncomeMinor:  m.IncomeMinor,
			ExpenseMinor: m.ExpenseMinor,
			NetMinor:     m.NetMinor,
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write cashflow CSV: %w", err)
	}
	return nil
}
