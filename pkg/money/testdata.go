package money

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// TestDataGenerator generates realistic household ledger test data using
// gofakeit. Amounts are FCFA minor units in household-plausible ranges.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a new test data generator with a random seed.
func NewTestDataGenerator() *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(0)}
}

// NewTestDataGeneratorWithSeed creates a generator with a specific seed for
// reproducibility.
func NewTestDataGeneratorWithSeed(seed int64) *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(seed)}
}

var (
	incomeSources = []string{
		"Salaire Alix", "Salaire William", "Freelance design",
		"Loyer studio Bonapriso", "Dividendes SCI", "Commerce tissus",
	}
	expenseCategories = []string{
		"Loyer", "Électricité", "Eau", "Transport", "Alimentation",
		"Scolarité", "Santé", "Restaurant", "Abonnement Canal+",
		"Épargne Tontine", "Fonds d'urgence", "Remboursement crédit",
	}
	projectNames = []string{
		"Immeuble locatif Japoma", "Boutique de quartier", "MBA à distance",
		"Voiture familiale", "Poulailler semi-industriel", "Terrain Yassa",
	}
	projectTypes = []string{"Actif générateur", "Passif", "Formation"}
)

// MonthKey returns a random "2006-01" month within the past year.
func (g *TestDataGenerator) MonthKey() string {
	d := g.faker.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())
	return d.Format("2006-01")
}

// IncomeSource returns a plausible income source label.
func (g *TestDataGenerator) IncomeSource() string {
	return incomeSources[g.faker.Number(0, len(incomeSources)-1)]
}

// ExpenseCategory returns a plausible expense category label.
func (g *TestDataGenerator) ExpenseCategory() string {
	return expenseCategories[g.faker.Number(0, len(expenseCategories)-1)]
}

// ProjectName returns a plausible family project name.
func (g *TestDataGenerator) ProjectName() string {
	return projectNames[g.faker.Number(0, len(projectNames)-1)]
}

// ProjectType returns one of the three project types.
func (g *TestDataGenerator) ProjectType() string {
	return projectTypes[g.faker.Number(0, len(projectTypes)-1)]
}

// IncomeMinor returns a monthly-income-sized FCFA amount.
func (g *TestDataGenerator) IncomeMinor() int64 {
	return int64(g.faker.Number(150_000, 1_200_000))
}

// ExpenseMinor returns an expense-sized FCFA amount.
func (g *TestDataGenerator) ExpenseMinor() int64 {
	return int64(g.faker.Number(2_000, 400_000))
}

// BudgetMinor returns a project-budget-sized FCFA amount.
func (g *TestDataGenerator) BudgetMinor() int64 {
	return int64(g.faker.Number(500_000, 30_000_000))
}

// Date returns a random date within the past year.
func (g *TestDataGenerator) Date() time.Time {
	return g.faker.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())
}

// DateString returns Date formatted the way the family's CSV exports carry
// dates.
func (g *TestDataGenerator) DateString() string {
	return g.Date().Format("2006-01-02")
}

// AmountString renders an amount the way a messy CSV might: sometimes with
// thousands separators, sometimes with a currency suffix.
func (g *TestDataGenerator) AmountString(minor int64) string {
	switch g.faker.Number(0, 2) {
	case 0:
		return fmt.Sprintf("%d", minor)
	case 1:
		return FormatFCFA(minor)
	default:
		return fmt.Sprintf("%d FCFA", minor)
	}
}
