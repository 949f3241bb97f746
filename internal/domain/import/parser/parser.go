// Package parser reads the plan's transaction and project CSV files into raw
// ledger records. It uses gocsv for struct-based unmarshaling with flexible
// header naming (the family's exports mix French and English headers), and it
// never drops a row: field-level problems are left for the ledger normalizer
// to coerce.
package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/alixwilliam/finplan/internal/domain/ledger"
)

// TransactionRow is a raw transaction CSV row. gocsv matches columns by
// header name, so alternative spellings are extra struct fields.
type TransactionRow struct {
	Date  string `csv:"Date"`
	Date2 string `csv:"date"`

	Montant string `csv:"Montant"`
	Amount  string `csv:"amount"`

	Categorie string `csv:"Categorie"`
	Category  string `csv:"category"`

	Source  string `csv:"Source"`
	Source2 string `csv:"source"`

	Nature  string `csv:"Nature"`
	Nature2 string `csv:"nature"`
}

// ProjectRow is a raw project CSV row.
type ProjectRow struct {
	Projet string `csv:"Projet"`
	Name   string `csv:"name"`

	Type  string `csv:"Type"`
	Type2 string `csv:"type"`

	BudgetPrevu string `csv:"Budget_prevu"`
	TotalBudget string `csv:"total_budget"`

	BudgetCotise string `csv:"Budget_cotise"`
	Contributed  string `csv:"contributed_budget"`

	ROIEstime string `csv:"ROI_estime_pct"`
	ROI       string `csv:"expected_roi_pct"`

	DateEcheance string `csv:"Date_echeance"`
	DueDate      string `csv:"due_date"`

	Statut string `csv:"Statut"`
	Status string `csv:"status"`

	Categorie string `csv:"Categorie"`
	Category  string `csv:"category"`

	Priorite string `csv:"Priorite"`
	Priority string `csv:"priority"`

	CashFlowMensuel string `csv:"Cash_flow_mensuel"`
	MonthlyCashflow string `csv:"monthly_cashflow"`
}

// ParseResult reports what a parse produced.
type ParseResult struct {
	TotalRows int
}

// Config tunes CSV reading for non-standard exports.
type Config struct {
	Delimiter rune // 0 = standard comma
}

// Parser reads the plan's CSV files.
type Parser struct {
	config Config
}

// NewParser creates a parser with the given configuration.
func NewParser(config Config) *Parser {
	return &Parser{config: config}
}

func (p *Parser) reader(in io.Reader) gocsv.CSVReader {
	r := csv.NewReader(in)
	if p.config.Delimiter != 0 {
		r.Comma = p.config.Delimiter
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	return r
}

// ParseTransactions reads a transaction CSV into raw ledger records. Only
// structurally broken CSV (unreadable header, mismatched quoting) errors;
// malformed field values pass through for the normalizer to coerce.
func (p *Parser) ParseTransactions(r io.Reader) ([]ledger.RawTransaction, *ParseResult, error) {
	var rows []TransactionRow
	if err := gocsv.UnmarshalCSV(p.reader(r), &rows); err != nil {
		return nil, nil, fmt.Errorf("failed to parse transactions CSV: %w", err)
	}

	raws := make([]ledger.RawTransaction, len(rows))
	for i, row := range rows {
		raws[i] = ledger.RawTransaction{
			Date:     ledger.RawField(coalesce(row.Date, row.Date2)),
			Amount:   ledger.RawField(coalesce(row.Montant, row.Amount)),
			Category: ledger.RawField(coalesce(row.Categorie, row.Category)),
			Source:   ledger.RawField(coalesce(row.Source, row.Source2)),
			Nature:   ledger.RawField(coalesce(row.Nature, row.Nature2)),
		}
	}
	return raws, &ParseResult{TotalRows: len(rows)}, nil
}

// ParseProjects reads a project CSV into raw ledger records.
func (p *Parser) ParseProjects(r io.Reader) ([]ledger.RawProject, *ParseResult, error) {
	var rows []ProjectRow
	if err := gocsv.UnmarshalCSV(p.reader(r), &rows); err != nil {
		return nil, nil, fmt.Errorf("failed to parse projects CSV: %w", err)
	}

	raws := make([]ledger.RawProject, len(rows))
	for i, row := range rows {
		raws[i] = ledger.RawProject{
			Name:            ledger.RawField(coalesce(row.Projet, row.Name)),
			Type:            ledger.RawField(coalesce(row.Type, row.Type2)),
			TotalBudget:     ledger.RawField(coalesce(row.BudgetPrevu, row.TotalBudget)),
			Contributed:     ledger.RawField(coalesce(row.BudgetCotise, row.Contributed)),
			ExpectedROIPct:  ledger.RawField(coalesce(row.ROIEstime, row.ROI)),
			DueDate:         ledger.RawField(coalesce(row.DateEcheance, row.DueDate)),
			Status:          ledger.RawField(coalesce(row.Statut, row.Status)),
			Category:        ledger.RawField(coalesce(row.Categorie, row.Category)),
			Priority:        ledger.RawField(coalesce(row.Priorite, row.Priority)),
			MonthlyCashflow: ledger.RawField(coalesce(row.CashFlowMensuel, row.MonthlyCashflow)),
		}
	}
	return raws, &ParseResult{TotalRows: len(rows)}, nil
}

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
