package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alixwilliam/finplan/internal/domain/advisory"
	"github.com/alixwilliam/finplan/internal/domain/insights"
)

func sampleBundle() *insights.KPIBundle {
	return &insights.KPIBundle{
		ComputedAt:             time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		CumulativeIncomeMinor:  1_200_000,
		CumulativeExpenseMinor: 400_000,
		CumulativeBalanceMinor: 800_000,
		Monthly: []insights.MonthCashflow{
			{Month: "", IncomeMinor: 0, ExpenseMinor: 50_000, NetMinor: -50_000},
			{Month: "2025-01", IncomeMinor: 1_200_000, ExpenseMinor: 350_000, NetMinor: 850_000},
		},
		Buckets: []insights.BucketShare{
			{Bucket: "Besoins", AmountMinor: 350_000, Share: 0.875},
			{Bucket: "Envies", AmountMinor: 50_000, Share: 0.125},
		},
		Phase:             insights.PhaseTransition,
		BabyStep:          3,
		PortfolioQuadrant: insights.PortfolioEmployee,
	}
}

func sampleAdvice() []advisory.Advice {
	return []advisory.Advice{
		{
			Project:   "Immeuble locatif",
			Kiyosaki:  advisory.Opinion{Persona: advisory.PersonaKiyosaki, Verdict: advisory.VerdictApprove},
			Ramsey:    advisory.Opinion{Persona: advisory.PersonaRamsey, Verdict: advisory.VerdictCaution},
			Orman:     advisory.Opinion{Persona: advisory.PersonaOrman, Verdict: advisory.VerdictApprove},
			Consensus: advisory.VerdictApprove,
		},
	}
}

func TestWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Workbook(&buf, sampleBundle(), sampleAdvice()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{sheetKPI, sheetCashflow, sheetBuckets, sheetProjects}, f.GetSheetList())

	t.Run("KPI sheet carries the headline numbers", func(t *testing.T) {
		rows, err := f.GetRows(sheetKPI)
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		assert.Equal(t, []string{"Indicateur", "Valeur"}, rows[0][:2])

		flat := strings.Join(flatten(rows), "|")
		assert.Contains(t, flat, "1 200 000 FCFA")
		assert.Contains(t, flat, "800 000 FCFA")
		assert.Contains(t, flat, string(insights.PhaseTransition))
	})

	t.Run("undated rows are labeled", func(t *testing.T) {
		rows, err := f.GetRows(sheetCashflow)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Sans date", rows[1][0])
		assert.Equal(t, "2025-01", rows[2][0])
	})

	t.Run("projects sheet lists verdicts", func(t *testing.T) {
		rows, err := f.GetRows(sheetProjects)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Immeuble locatif", rows[1][0])
		assert.Equal(t, string(advisory.VerdictCaution), rows[1][2])
	})
}

func TestMonthlyCashflowCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MonthlyCashflowCSV(&buf, sampleBundle()))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Mois,Revenus,Depenses,Net", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Sans date")
	assert.Contains(t, lines[2], "2025-01")
	assert.Contains(t, lines[2], "850000")
}

func flatten(rows [][]string) []string {
	var out []string
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}
