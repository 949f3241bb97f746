// Package advisory maps a project and the current classification state to
// fixed mentor verdicts. It is a deterministic template lookup with a few
// conditional overrides, no randomness and no external calls.
package advisory

import (
	"github.com/alixwilliam/finplan/internal/domain/categorization"
	"github.com/alixwilliam/finplan/internal/domain/insights"
	"github.com/alixwilliam/finplan/internal/domain/ledger"
	"github.com/alixwilliam/finplan/internal/domain/rules"
)

// Persona identifies one of the three financial mentors.
type Persona string

const (
	PersonaKiyosaki Persona = "Kiyosaki"
	PersonaRamsey   Persona = "Ramsey"
	PersonaOrman    Persona = "Orman"
)

// Verdict is a mentor's or the consensus' call on a project.
type Verdict string

const (
	VerdictApprove Verdict = "Approve"
	VerdictCaution Verdict = "Caution"
	VerdictDefer   Verdict = "Defer"
)

// Opinion is one mentor's verdict with its fixed advisory template.
type Opinion struct {
	Persona Persona `json:"persona"`
	Verdict Verdict `json:"verdict"`
	Message string  `json:"message"`
}

// Advice bundles the three mentor opinions and the consensus verdict for one
// project.
type Advice struct {
	Project   string  `json:"project"`
	Kiyosaki  Opinion `json:"kiyosaki"`
	Ramsey    Opinion `json:"ramsey"`
	Orman     Opinion `json:"orman"`
	Consensus Verdict `json:"consensus"`
}

// Advise produces the mentor verdicts for a project given the current
// classification state. Identical inputs always produce identical output.
func Advise(project ledger.Project, cls insights.Classification, cfg rules.Config) Advice {
	return Advice{
		Project:   project.Name,
		Kiyosaki:  adviseKiyosaki(project, cls),
		Ramsey:    adviseRamsey(project, cls, cfg),
		Orman:     adviseOrman(project, cfg),
		Consensus: Consensus(project.Type),
	}
}

// AdviseAll produces advice for every project in snapshot order.
func AdviseAll(projects []ledger.Project, cls insights.Classification, cfg rules.Config) []Advice {
	out := make([]Advice, len(projects))
	for i, p := range projects {
		out[i] = Advise(p, cls, cfg)
	}
	return out
}

// Consensus derives the joint verdict from the project type alone:
// generating assets and formation spend get the green light, liabilities a
// warning.
func Consensus(projectType ledger.ProjectType) Verdict {
	if projectType == ledger.ProjectLiability {
		return VerdictCaution
	}
	return VerdictApprove
}

// adviseKiyosaki reads the project through the asset/liability lens.
func adviseKiyosaki(project ledger.Project, cls insights.Classification) Opinion {
	op := Opinion{Persona: PersonaKiyosaki}

	switch project.Type {
	case ledger.ProjectFormation:
		op.Verdict = VerdictApprove
		op.Message = "Formation : meilleur ROI possible, celui du capital humain."
	case ledger.ProjectGeneratingAsset:
		if project.ExpectedROIPct > 0 {
			op.Verdict = VerdictApprove
			op.Message = "Actif : à financer en priorité si le ROI dépasse le coût. Utiliser les revenus passifs ou le business."
		} else {
			op.Verdict = VerdictCaution
			op.Message = "Actif neutre : préciser le ROI attendu avant d'engager de gros montants."
		}
	default:
		if cls.Emergency.Coverage < 1.0 {
			op.Verdict = VerdictDefer
			op.Message = "Passif : fonds d'urgence incomplet, reporter et financer via des revenus d'actifs."
		} else {
			op.Verdict = VerdictCaution
			op.Message = "Passif : financer via les revenus d'actifs, jamais par de la dette."
		}
	}
	return op
}

// adviseRamsey applies the Baby Step discipline. A liability while the
// household is still in steps 1-2 is deferred no matter its amount; vital
// categories stay approved in every step.
func adviseRamsey(project ledger.Project, cls insights.Classification, cfg rules.Config) Opinion {
	op := Opinion{Persona: PersonaRamsey}

	switch {
	case project.Type == ledger.ProjectLiability && cls.BabyStep < 3:
		op.Verdict = VerdictDefer
		op.Message = "Reporter : sécurité d'abord (Baby Steps 1 à 3)."
	case categorization.ContainsAny(project.Category, cfg.VitalCategories):
		op.Verdict = VerdictApprove
		op.Message = "Priorité vitale : maintenue même en Baby Steps 1-2."
	case cls.Emergency.Coverage < 1.0:
		op.Verdict = VerdictCaution
		op.Message = "Attendre la couverture complète du fonds d'urgence."
	default:
		op.Verdict = VerdictApprove
		op.Message = "Autoriser avec un budget mensuel fixe."
	}
	return op
}

// adviseOrman puts people first: education, health and administrative
// projects are always vital.
func adviseOrman(project ledger.Project, cfg rules.Config) Opinion {
	op := Opinion{Persona: PersonaOrman}

	switch {
	case categorization.ContainsAny(project.Category, cfg.VitalCategories):
		op.Verdict = VerdictApprove
		op.Message = "Les personnes d'abord : à financer avant les biens matériels."
	case project.Stance() == ledger.StanceLiability:
		op.Verdict = VerdictCaution
		op.Message = "Passif : ne pas entamer le fonds d'urgence, vérifier la règle 50/30/20."
	default:
		op.Verdict = VerdictApprove
		op.Message = "Feu vert si le projet renforce la sécurité ou l'indépendance."
	}
	return op
}
