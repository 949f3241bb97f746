package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alixwilliam/finplan/internal/domain/insights"
	"github.com/alixwilliam/finplan/internal/domain/ledger"
	"github.com/alixwilliam/finplan/internal/domain/rules"
)

func clsWith(babyStep int, coverage float64) insights.Classification {
	return insights.Classification{
		BabyStep: babyStep,
		Emergency: insights.EmergencyFund{
			Coverage: coverage,
		},
	}
}

func TestConsensus(t *testing.T) {
	assert.Equal(t, VerdictCaution, Consensus(ledger.ProjectLiability))
	assert.Equal(t, VerdictApprove, Consensus(ledger.ProjectGeneratingAsset))
	assert.Equal(t, VerdictApprove, Consensus(ledger.ProjectFormation))
}

func TestAdvise_RamseyDefersLiabilityInEarlySteps(t *testing.T) {
	// A liability while the household is still below Baby Step 3 is
	// deferred regardless of the amount.
	cfg := rules.Default()
	project := ledger.Project{
		Name:             "Voiture familiale",
		Type:             ledger.ProjectLiability,
		TotalBudgetMinor: 1, // amount must not matter
	}

	advice := Advise(project, clsWith(2, 1.0), cfg)
	assert.Equal(t, VerdictDefer, advice.Ramsey.Verdict)

	bigProject := project
	bigProject.TotalBudgetMinor = 50_000_000
	advice = Advise(bigProject, clsWith(1, 0.0), cfg)
	assert.Equal(t, VerdictDefer, advice.Ramsey.Verdict)
}

func TestAdvise_Ramsey(t *testing.T) {
	cfg := rules.Default()

	tests := []struct {
		name    string
		project ledger.Project
		cls     insights.Classification
		want    Verdict
	}{
		{
			name:    "vital category approved despite early step",
			project: ledger.Project{Name: "Frais médicaux", Type: ledger.ProjectFormation, Category: "Santé"},
			cls:     clsWith(1, 0.2),
			want:    VerdictApprove,
		},
		{
			name:    "incomplete emergency fund is caution",
			project: ledger.Project{Name: "Boutique", Type: ledger.ProjectGeneratingAsset},
			cls:     clsWith(3, 0.5),
			want:    VerdictCaution,
		},
		{
			name:    "covered household gets approval",
			project: ledger.Project{Name: "Boutique", Type: ledger.ProjectGeneratingAsset},
			cls:     clsWith(4, 1.2),
			want:    VerdictApprove,
		},
		{
			name:    "liability after step 3 no longer deferred",
			project: ledger.Project{Name: "Voiture", Type: ledger.ProjectLiability},
			cls:     clsWith(3, 1.0),
			want:    VerdictApprove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advise(tt.project, tt.cls, cfg)
			assert.Equal(t, tt.want, got.Ramsey.Verdict)
		})
	}
}

func TestAdvise_Kiyosaki(t *testing.T) {
	cfg := rules.Default()

	tests := []struct {
		name    string
		project ledger.Project
		cls     insights.Classification
		want    Verdict
	}{
		{
			name:    "formation always approved",
			project: ledger.Project{Name: "MBA", Type: ledger.ProjectFormation},
			cls:     clsWith(1, 0),
			want:    VerdictApprove,
		},
		{
			name:    "asset with positive ROI approved",
			project: ledger.Project{Name: "Immeuble", Type: ledger.ProjectGeneratingAsset, ExpectedROIPct: 8},
			cls:     clsWith(1, 0),
			want:    VerdictApprove,
		},
		{
			name:    "asset without ROI is caution",
			project: ledger.Project{Name: "Terrain", Type: ledger.ProjectGeneratingAsset},
			cls:     clsWith(1, 0),
			want:    VerdictCaution,
		},
		{
			name:    "liability with incomplete fund deferred",
			project: ledger.Project{Name: "Voiture", Type: ledger.ProjectLiability},
			cls:     clsWith(1, 0.4),
			want:    VerdictDefer,
		},
		{
			name:    "liability with full fund is caution",
			project: ledger.Project{Name: "Voiture", Type: ledger.ProjectLiability},
			cls:     clsWith(4, 1.0),
			want:    VerdictCaution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advise(tt.project, tt.cls, cfg)
			assert.Equal(t, tt.want, got.Kiyosaki.Verdict)
		})
	}
}

func TestAdvise_Orman(t *testing.T) {
	cfg := rules.Default()

	tests := []struct {
		name    string
		project ledger.Project
		want    Verdict
	}{
		{
			name:    "vital category approved",
			project: ledger.Project{Name: "Scolarité enfants", Type: ledger.ProjectLiability, Category: "Scolarité"},
			want:    VerdictApprove,
		},
		{
			name:    "liability is caution",
			project: ledger.Project{Name: "Voiture", Type: ledger.ProjectLiability},
			want:    VerdictCaution,
		},
		{
			name:    "asset approved",
			project: ledger.Project{Name: "Immeuble", Type: ledger.ProjectGeneratingAsset},
			want:    VerdictApprove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advise(tt.project, clsWith(4, 1.0), cfg)
			assert.Equal(t, tt.want, got.Orman.Verdict)
		})
	}
}

func TestAdviseAll(t *testing.T) {
	cfg := rules.Default()
	projects := []ledger.Project{
		{Name: "Immeuble", Type: ledger.ProjectGeneratingAsset, ExpectedROIPct: 10},
		{Name: "Voiture", Type: ledger.ProjectLiability},
	}

	advice := AdviseAll(projects, clsWith(4, 1.0), cfg)
	require.Len(t, advice, 2)
	assert.Equal(t, "Immeuble", advice[0].Project)
	assert.Equal(t, VerdictApprove, advice[0].Consensus)
	assert.Equal(t, "Voiture", advice[1].Project)
	assert.Equal(t, VerdictCaution, advice[1].Consensus)
}

func TestAdvise_Deterministic(t *testing.T) {
	cfg := rules.Default()
	project := ledger.Project{Name: "Boutique", Type: ledger.ProjectGeneratingAsset, ExpectedROIPct: 5}
	cls := clsWith(3, 0.8)

	first := Advise(project, cls, cfg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Advise(project, cls, cfg))
	}
}
