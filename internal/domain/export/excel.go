// Package export renders the computed KPIs and the project advisory into
// shareable artifacts: an Excel workbook for the family review meeting and a
// flat CSV of the monthly series.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alixwilliam/finplan/internal/domain/advisory"
	"github.com/alixwilliam/finplan/internal/domain/insights"
	"github.com/alixwilliam/finplan/pkg/money"
)

const (
	sheetKPI      = "KPI"
	sheetCashflow = "Cashflow mensuel"
	sheetBuckets  = "Budget 50-30-20"
	sheetProjects = "Projets"
)

// Workbook builds the review workbook from a KPI bundle and the project
// advisory and writes it in xlsx format.
func Workbook(w io.Writer, bundle *insights.KPIBundle, advice []advisory.Advice) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetKPI); err != nil {
		return fmt.Errorf("failed to rename KPI sheet: %w", err)
	}
	for _, name := range []string{sheetCashflow, sheetBuckets, sheetProjects} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := writeKPISheet(f, bundle); err != nil {
		return err
	}
	if err := writeCashflowSheet(f, bundle); err != nil {
		return err
	}
	if err := writeBucketSheet(f, bundle); err != nil {
		return err
	}
	if err := writeProjectSheet(f, advice); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeKPISheet(f *excelize.File, bundle *insights.KPIBundle) error {
	rows := [][]interface{}{
		{"Indicateur", "Valeur"},
		{"Revenus cumulés", money.FormatFCFA(bundle.CumulativeIncomeMinor)},
		{"Dépenses cumulées", money.FormatFCFA(bundle.CumulativeExpenseMinor)},
		{"Solde", money.FormatFCFA(bundle.CumulativeBalanceMinor)},
		{"Fonds d'urgence réalisé", money.FormatFCFA(bundle.Emergency.RealizedMinor)},
		{"Fonds d'urgence requis", money.FormatFCFA(bundle.Emergency.RequiredMinor)},
		{"Couverture fonds d'urgence", bundle.Emergency.Coverage},
		{"Revenus passifs", money.FormatFCFA(bundle.PassiveIncomeMinor)},
		{"Ratio revenus passifs", bundle.PassiveRatio},
		{"Indépendance financière atteinte", bundle.IndependenceAttained},
		{"Règle 50/30/20 respectée", bundle.Rule.OK},
		{"Phase", string(bundle.Phase)},
		{"Baby Step", bundle.BabyStep},
		{"Quadrant dominant", string(bundle.PortfolioQuadrant)},
		{"Calculé le", bundle.ComputedAt.Format("2006-01-02 15:04")},
	}
	return writeRows(f, sheetKPI, rows)
}

func writeCashflowSheet(f *excelize.File, bundle *insights.KPIBundle) error {
	rows := [][]interface{}{{"Mois", "Revenus", "Dépenses", "Net"}}
	for _, m := range bundle.Monthly {
		month := m.Month
		if month == "" {
			month = "Sans date"
		}
		rows = append(rows, []interface{}{
			month,
			money.FormatFCFA(m.IncomeMinor),
			money.FormatFCFA(m.ExpenseMinor),
			money.FormatFCFA(m.NetMinor),
		})
	}
	return writeRows(f, sheetCashflow, rows)
}

func writeBucketSheet(f *excelize.File, bundle *insights.KPIBundle) error {
	rows := [][]interface{}{{"Poste", "Montant", "Part"}}
	for _, b := range bundle.Buckets {
		rows = append(rows, []interface{}{
			string(b.Bucket),
			money.FormatFCFA(b.AmountMinor),
			b.Share,
		})
	}
	return writeRows(f, sheetBuckets, rows)
}

func writeProjectSheet(f *excelize.File, advice []advisory.Advice) error {
	rows := [][]interface{}{{"Projet", "Kiyosaki", "Ramsey", "Orman", "Consensus"}}
	for _, a := range advice {
		rows = append(rows, []interface{}{
			a.Project,
			string(a.Kiyosaki.Verdict),
			string(a.Ramsey.Verdict),
			string(a.Orman.Verdict),
			string(a.Consensus),
		})
	}
	return writeRows(f, sheetProjects, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d on %s: %w", i+1, sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
