// Package rules holds the classification configuration: the keyword mappings
// and policy thresholds that parametrize categorization and KPI
// classification. A Config is always passed explicitly to computations so two
// concurrent calls with different configurations never interfere; nothing in
// the engine reads ambient state.
package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Bucket is a 50/30/20 expense classification dimension.
type Bucket string

const (
	BucketNeeds   Bucket = "Besoins"
	BucketWants   Bucket = "Envies"
	BucketSavings Bucket = "Épargne/Dette"
	BucketOther   Bucket = "Autre"
)

// MatchOrder is the fixed priority order for bucket assignment: the first
// bucket whose keyword list matches wins.
var MatchOrder = []Bucket{BucketNeeds, BucketWants, BucketSavings}

// Quadrant is an income-source classification (Kiyosaki's cashflow quadrant).
type Quadrant string

const (
	QuadrantEmployee     Quadrant = "E"
	QuadrantSelfEmployed Quadrant = "S"
	QuadrantBusiness     Quadrant = "B"
	QuadrantInvestor     Quadrant = "I"
	QuadrantOther        Quadrant = "Autre"
	QuadrantMixed        Quadrant = "Mixte"
)

// QuadrantOrder is the fixed matching order for per-row quadrant assignment.
var QuadrantOrder = []Quadrant{QuadrantEmployee, QuadrantSelfEmployed, QuadrantBusiness, QuadrantInvestor}

// ErrInvalidConfig is wrapped by every configuration validation failure so
// callers can distinguish bad configuration from engine errors.
var ErrInvalidConfig = errors.New("rules: invalid configuration")

// Config parametrizes the Categorizer and Classifier. All thresholds default
// to the plan's policy constants; every one is overridable from a JSON
// document.
type Config struct {
	// Keyword mappings (matched case-insensitively as substrings).
	BucketKeywords    map[Bucket][]string   `json:"bucket_keywords"`
	PassiveKeywords   []string              `json:"passive_keywords"`
	EmergencyKeywords []string              `json:"emergency_keywords"`
	QuadrantKeywords  map[Quadrant][]string `json:"quadrant_keywords"`
	VitalCategories   []string              `json:"vital_categories"`

	// Emergency fund policy.
	EmergencyTargetMinor  int64 `json:"emergency_target_minor"`
	EmergencyTargetMonths int   `json:"emergency_target_months"`

	// Independence and phase policy.
	IndependenceTargetRatio float64 `json:"independence_target_ratio"`
	PhasePassiveRatioMin    float64 `json:"phase_passive_ratio_min"`

	// Baby Step policy. The starter threshold is
	// min(floor, required × fraction); alternate step ladders from older
	// plan spreadsheets are expressed by overriding these two values.
	BabyStepFloorMinor      int64   `json:"baby_step_floor_minor"`
	BabyStepStarterFraction float64 `json:"baby_step_starter_fraction"`

	// 50/30/20 rule tolerances.
	RuleNeedsMax   float64 `json:"rule_needs_max"`
	RuleWantsMax   float64 `json:"rule_wants_max"`
	RuleSavingsMin float64 `json:"rule_savings_min"`

	// Portfolio quadrant thresholds.
	QuadrantSalaryShare   float64 `json:"quadrant_salary_share"`
	QuadrantBusinessShare float64 `json:"quadrant_business_share"`
	QuadrantInvestorShare float64 `json:"quadrant_investor_share"`
}

// Default returns the plan's standard configuration.
func Default() Config {
	return Config{
		BucketKeywords: map[Bucket][]string{
			BucketNeeds:   {"Scolarité", "Santé", "Loyer", "Transports essentiels", "Nourriture"},
			BucketWants:   {"Voyage", "Cadeaux", "Sorties", "Culture", "Électronique"},
			BucketSavings: {"Épargne projet", "Fonds d'urgence", "Remboursement dette"},
		},
		PassiveKeywords:   []string{"iiba", "dividende", "intérêt", "immobilier", "rente", "location", "invest"},
		EmergencyKeywords: []string{"urgence", "épargne"},
		QuadrantKeywords: map[Quadrant][]string{
			QuadrantEmployee:     {"Salaire William", "Job", "Salariat"},
			QuadrantSelfEmployed: {"Freelance", "Consulting"},
			QuadrantBusiness:     {"IIBA", "Atekys", "Entreprise familiale"},
			QuadrantInvestor:     {"Dividendes", "Intérêts", "Immobilier", "Rente"},
		},
		VitalCategories: []string{"scolarité", "santé", "administratif"},

		EmergencyTargetMinor:  1_000_000,
		EmergencyTargetMonths: 3,

		IndependenceTargetRatio: 1.0,
		PhasePassiveRatioMin:    0.5,

		BabyStepFloorMinor:      1_000_000,
		BabyStepStarterFraction: 0.2,

		RuleNeedsMax:   0.55,
		RuleWantsMax:   0.35,
		RuleSavingsMin: 0.15,

		QuadrantSalaryShare:   0.70,
		QuadrantBusinessShare: 0.50,
		QuadrantInvestorShare: 0.40,
	}
}

// UnmarshalJSON decodes a configuration document over the defaults: fields
// absent from the document keep their Default values, unknown fields are
// rejected. Partial documents therefore never erase keyword lists or zero
// thresholds, whether the Config is decoded standalone or embedded in a
// request body.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	merged := plain(Default())
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&merged); err != nil {
		return err
	}
	*c = Config(merged)
	return nil
}

// LoadJSON reads a user-supplied configuration document. Fields absent from
// the document keep their defaults; malformed documents or out-of-range
// values surface as an ErrInvalidConfig, so the caller never silently keeps
// a stale configuration.
func LoadJSON(r io.Reader) (Config, error) {
	var cfg Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	for bucket := range c.BucketKeywords {
		switch bucket {
		case BucketNeeds, BucketWants, BucketSavings:
		default:
			return fmt.Errorf("%w: unknown bucket %q", ErrInvalidConfig, bucket)
		}
	}
	for quadrant := range c.QuadrantKeywords {
		switch quadrant {
		case QuadrantEmployee, QuadrantSelfEmployed, QuadrantBusiness, QuadrantInvestor:
		default:
			return fmt.Errorf("%w: unknown quadrant %q", ErrInvalidConfig, quadrant)
		}
	}
	if c.EmergencyTargetMinor < 0 {
		return fmt.Errorf("%w: emergency target must not be negative", ErrInvalidConfig)
	}
	if c.EmergencyTargetMonths < 0 {
		return fmt.Errorf("%w: emergency target months must not be negative", ErrInvalidConfig)
	}
	for name, v := range map[string]float64{
		"independence_target_ratio":  c.IndependenceTargetRatio,
		"phase_passive_ratio_min":    c.PhasePassiveRatioMin,
		"baby_step_starter_fraction": c.BabyStepStarterFraction,
		"rule_needs_max":             c.RuleNeedsMax,
		"rule_wants_max":             c.RuleWantsMax,
		"rule_savings_min":           c.RuleSavingsMin,
		"quadrant_salary_share":      c.QuadrantSalaryShare,
		"quadrant_business_share":    c.QuadrantBusinessShare,
		"quadrant_investor_share":    c.QuadrantInvestorShare,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, name)
		}
	}
	if c.BabyStepStarterFraction > 1 {
		return fmt.Errorf("%w: baby_step_starter_fraction must be at most 1", ErrInvalidConfig)
	}
	for _, name := range []string{"rule_needs_max", "rule_wants_max", "rule_savings_min"} {
		v := map[string]float64{
			"rule_needs_max":   c.RuleNeedsMax,
			"rule_wants_max":   c.RuleWantsMax,
			"rule_savings_min": c.RuleSavingsMin,
		}[name]
		if v > 1 {
			return fmt.Errorf("%w: %s must be a share in [0, 1]", ErrInvalidConfig, name)
		}
	}
	return nil
}
