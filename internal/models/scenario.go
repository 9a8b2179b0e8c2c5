// internal/models/scenario.go
package models

// ScenarioParameters carries the perturbation inputs for a simulation run.
// Nil percentage pointers select the scenario's default; an empty vessel list
// selects every vessel with inspection data.
type ScenarioParameters struct {
	DefectReductionPct  *float64 `json:"defectReductionPct,omitempty"`
	AgeRiskReductionPct *float64 `json:"ageRiskReductionPct,omitempty"`
	Vessels             []string `json:"vessels,omitempty"`
}

// VesselScenarioOutcome is the before/after pair for one vessel. RiskReduction
// is baseline minus modified; positive means the scenario helped.
type VesselScenarioOutcome struct {
	VesselName       string       `json:"vesselName"`
	BaselineScore    float64      `json:"baselineScore"`
	ModifiedScore    float64      `json:"modifiedScore"`
	RiskReduction    float64      `json:"riskReduction"`
	BaselineCategory RiskCategory `json:"baselineCategory"`
	ModifiedCategory RiskCategory `json:"modifiedCategory"`
}

// CategoryChanges counts category transitions under the severity ranking.
type CategoryChanges struct {
	Improved  int `json:"improved"`
	Unchanged int `json:"unchanged"`
	Worsened  int `json:"worsened"`
}

// ROIEstimate projects the financial return of a mitigation scenario.
// PaybackPeriodYears is -1 when annual savings are zero or negative: the
// investment never pays back, and the sentinel keeps the struct JSON-safe
// where +Inf would not marshal.
type ROIEstimate struct {
	EstimatedCost      float64 `json:"estimatedCost"`
	AnnualSavings      float64 `json:"annualSavings"`
	PaybackPeriodYears float64 `json:"paybackPeriodYears"`
	ROI5YearPct        float64 `json:"roi5YearPct"`
}

type ScenarioSummary struct {
	TotalVessels         int             `json:"totalVessels"`
	VesselsImproved      int             `json:"vesselsImproved"`
	ImprovementRatePct   float64         `json:"improvementRatePct"`
	AverageRiskReduction float64         `json:"averageRiskReduction"`
	TotalRiskReduction   float64         `json:"totalRiskReduction"`
	CategoryChanges      CategoryChanges `json:"categoryChanges"`
	ROIEstimate          ROIEstimate     `json:"roiEstimate"`
}

// ScenarioResult is the full simulation output. An unknown scenario name
// yields an empty VesselsAnalyzed with a zeroed summary, so callers must check
// before aggregating further.
type ScenarioResult struct {
	SimulationID    string                  `json:"simulationId"`
	ScenarioName    string                  `json:"scenarioName"`
	Parameters      ScenarioParameters      `json:"parameters"`
	SimulationDate  string                  `json:"simulationDate"`
	VesselsAnalyzed []VesselScenarioOutcome `json:"vesselsAnalyzed"`
	Summary         ScenarioSummary         `json:"summary"`
}
