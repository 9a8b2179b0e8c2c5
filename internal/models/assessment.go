// internal/models/assessment.go
package models

type RiskCategory string

const (
	RiskCategoryLow      RiskCategory = "LOW"
	RiskCategoryMedium   RiskCategory = "MEDIUM"
	RiskCategoryHigh     RiskCategory = "HIGH"
	RiskCategoryCritical RiskCategory = "CRITICAL"
)

// Rank orders categories by severity. Comparing the labels as strings sorts
// them alphabetically (CRITICAL < HIGH < LOW < MEDIUM), which is wrong for
// improved/worsened checks.
func (c RiskCategory) Rank() int {
	switch c {
	case RiskCategoryLow:
		return 0
	case RiskCategoryMedium:
		return 1
	case RiskCategoryHigh:
		return 2
	case RiskCategoryCritical:
		return 3
	}
	return -1
}

// FactorBreakdown holds the three sub-factors and their fixed weights. The
// weights always sum to 1.0 and are never vessel-dependent.
type FactorBreakdown struct {
	AgeFactor     float64 `json:"ageFactor"`
	HistoryFactor float64 `json:"historyFactor"`
	MOUFactor     float64 `json:"mouFactor"`
	AgeWeight     float64 `json:"ageWeight"`
	HistoryWeight float64 `json:"historyWeight"`
	MOUWeight     float64 `json:"mouWeight"`
}

// VesselSnapshot is the denormalized vessel_master excerpt embedded in each
// assessment so consumers do not need a second lookup.
type VesselSnapshot struct {
	AgeYears   float64 `json:"ageYears"`
	VesselType string  `json:"vesselType"`
	FlagState  string  `json:"flagState"`
	BuiltYear  int     `json:"builtYear"`
	DWT        int     `json:"dwt"`
}

// RiskAssessment is the per-vessel scoring result. Transient: recomputed on
// each request; AssessedAt is informational and does not affect the score.
type RiskAssessment struct {
	VesselName      string          `json:"vesselName"`
	RiskScore       float64         `json:"riskScore"`
	RiskCategory    RiskCategory    `json:"riskCategory"`
	ConfidenceLower float64         `json:"confidenceLower"`
	ConfidenceUpper float64         `json:"confidenceUpper"`
	FactorBreakdown FactorBreakdown `json:"factorBreakdown"`
	VesselInfo      VesselSnapshot  `json:"vesselInfo"`
	AssessedAt      string          `json:"assessedAt"`
}
