package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactions(t *testing.T) {
	p := NewParser(Config{})

	t.Run("french headers", func(t *testing.T) {
		csv := "Date,Montant,Categorie,Source,Nature\n" +
			"2025-01-10,450000,Salaire,Salaire William,Revenu\n" +
			"2025-01-12,-120000,Loyer,,Dépense\n"

		raws, result, err := p.ParseTransactions(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, raws, 2)
		assert.Equal(t, 2, result.TotalRows)

		assert.Equal(t, "2025-01-10", raws[0].Date.String())
		assert.Equal(t, "450000", raws[0].Amount.String())
		assert.Equal(t, "Salaire William", raws[0].Source.String())
		assert.Equal(t, "Revenu", raws[0].Nature.String())
		assert.Equal(t, "Loyer", raws[1].Category.String())
	})

	t.Run("english headers", func(t *testing.T) {
		csv := "date,amount,category,source,nature\n" +
			"2025-02-01,300000,Dividende,IIBA,income\n"

		raws, _, err := p.ParseTransactions(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, raws, 1)
		assert.Equal(t, "IIBA", raws[0].Source.String())
		assert.Equal(t, "income", raws[0].Nature.String())
	})

	t.Run("malformed values pass through", func(t *testing.T) {
		csv := "Date,Montant,Categorie,Source,Nature\n" +
			"pas une date,n/a,Divers,,\n"

		raws, _, err := p.ParseTransactions(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, raws, 1)
		assert.Equal(t, "pas une date", raws[0].Date.String())
		assert.Equal(t, "n/a", raws[0].Amount.String())
	})

	t.Run("empty file has no rows", func(t *testing.T) {
		raws, result, err := p.ParseTransactions(strings.NewReader("Date,Montant,Categorie,Source,Nature\n"))
		require.NoError(t, err)
		assert.Empty(t, raws)
		assert.Equal(t, 0, result.TotalRows)
	})
}

func TestParseTransactions_SemicolonDelimiter(t *testing.T) {
	p := NewParser(Config{Delimiter: ';'})
	csv := "Date;Montant;Categorie;Source;Nature\n" +
		"2025-03-01;25000;Transport;;Dépense\n"

	raws, _, err := p.ParseTransactions(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "25000", raws[0].Amount.String())
}

func TestParseProjects(t *testing.T) {
	p := NewParser(Config{})

	csv := "Projet,Type,Budget_prevu,Budget_cotise,ROI_estime_pct,Date_echeance,Statut,Categorie,Priorite,Cash_flow_mensuel\n" +
		"Immeuble locatif,Actif générateur,10000000,2500000,8.5,2026-06-30,En cours,Immobilier,Haute,150000\n" +
		"Voiture familiale,Passif,5000000,1000000,,2025-12-31,En attente,Transport,Moyenne,\n"

	raws, result, err := p.ParseProjects(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, 2, result.TotalRows)

	assert.Equal(t, "Immeuble locatif", raws[0].Name.String())
	assert.Equal(t, "Actif générateur", raws[0].Type.String())
	assert.Equal(t, "10000000", raws[0].TotalBudget.String())
	assert.Equal(t, "8.5", raws[0].ExpectedROIPct.String())
	assert.Equal(t, "150000", raws[0].MonthlyCashflow.String())

	assert.Equal(t, "Passif", raws[1].Type.String())
	assert.Equal(t, "", raws[1].ExpectedROIPct.String())
}
