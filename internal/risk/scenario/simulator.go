// internal/risk/scenario/simulator.go
package scenario

import (
	"math"
	"time"

	"vessel-risk-workers/internal/models"
	"vessel-risk-workers/internal/risk/scoring"
)

// Recognized scenario names. FlagChange has a cost entry but no factor
// perturbation, so running it analyzes zero vessels.
const (
	TrainingImpact         = "training_impact"
	MaintenanceImprovement = "maintenance_improvement"
	FlagChange             = "flag_change"
)

// Perturbation defaults, in percent, applied when the caller omits the value.
const (
	DefaultDefectReductionPct  = 20.0
	DefaultAgeRiskReductionPct = 15.0
)

// Implementation cost table for the ROI model, in USD.
const defaultScenarioCost = 100000

var scenarioCosts = map[string]float64{
	TrainingImpact:         50000,
	MaintenanceImprovement: 200000,
	FlagChange:             25000,
}

// Each point of average risk reduction is assumed to save this much per year
// in insurance and incident costs.
const riskPointAnnualSavings = 5000

// PaybackNever is the payback-period sentinel for scenarios whose annual
// savings are zero or negative.
const PaybackNever = -1.0

// IsKnown reports whether a scenario name has a definition. Unknown names
// still run, they just analyze zero vessels.
func IsKnown(scenarioName string) bool {
	switch scenarioName {
	case TrainingImpact, MaintenanceImprovement, FlagChange:
		return true
	}
	return false
}

// Simulator perturbs one risk factor across a vessel set and reports the
// before/after deltas plus an ROI projection.
type Simulator struct {
	scorer *scoring.Scorer
}

func NewSimulator(scorer *scoring.Scorer) *Simulator {
	return &Simulator{scorer: scorer}
}

type modifiedScore struct {
	score    float64
	category models.RiskCategory
}

// Run executes one scenario over the requested vessels, defaulting to every
// vessel with inspection data. Unknown scenario names produce an empty
// VesselsAnalyzed and a zeroed summary rather than an error; callers check
// the outcome list before trusting the aggregates.
//
// Modified scores recombine the baseline's published (rounded) factor
// breakdown under the fixed weights, so the perturbed result is exactly what
// a reader of the baseline assessment would compute by hand.
func (s *Simulator) Run(scenarioName string, params models.ScenarioParameters) *models.ScenarioResult {
	result := &models.ScenarioResult{
		ScenarioName:    scenarioName,
		Parameters:      params,
		SimulationDate:  time.Now().UTC().Format(time.RFC3339),
		VesselsAnalyzed: make([]models.VesselScenarioOutcome, 0),
	}

	vessels := params.Vessels
	if len(vessels) == 0 {
		vessels = s.scorer.InspectedVessels()
	}

	baselines := make(map[string]*models.RiskAssessment, len(vessels))
	for _, name := range vessels {
		assessment, err := s.scorer.Score(name)
		if err != nil {
			continue
		}
		baselines[name] = assessment
	}

	modified := s.applyScenario(scenarioName, params, vessels, baselines)

	totalReduction := 0.0
	vesselsImproved := 0
	changes := models.CategoryChanges{}

	for _, name := range vessels {
		baseline, hasBaseline := baselines[name]
		mod, hasModified := modified[name]
		if !hasBaseline || !hasModified {
			continue
		}

		reduction := baseline.RiskScore - mod.score
		totalReduction += reduction
		if reduction > 0 {
			vesselsImproved++
		}

		switch {
		case mod.category.Rank() < baseline.RiskCategory.Rank():
			changes.Improved++
		case mod.category.Rank() == baseline.RiskCategory.Rank():
			changes.Unchanged++
		default:
			changes.Worsened++
		}

		result.VesselsAnalyzed = append(result.VesselsAnalyzed, models.VesselScenarioOutcome{
			VesselName:       name,
			BaselineScore:    baseline.RiskScore,
			ModifiedScore:    mod.score,
			RiskReduction:    reduction,
			BaselineCategory: baseline.RiskCategory,
			ModifiedCategory: mod.category,
		})
	}

	avgReduction := 0.0
	improvementRate := 0.0
	if len(vessels) > 0 {
		avgReduction = totalReduction / float64(len(vessels))
		improvementRate = float64(vesselsImproved) / float64(len(vessels)) * 100
	}

	result.Summary = models.ScenarioSummary{
		TotalVessels:         len(vessels),
		VesselsImproved:      vesselsImproved,
		ImprovementRatePct:   round1(improvementRate),
		AverageRiskReduction: round2(avgReduction),
		TotalRiskReduction:   round2(totalReduction),
		CategoryChanges:      changes,
		ROIEstimate:          EstimateROI(scenarioName, avgReduction),
	}
	return result
}

// applyScenario builds the perturbed score set. Vessels without a baseline are
// left out; scenario names without a perturbation rule return an empty map.
func (s *Simulator) applyScenario(scenarioName string, params models.ScenarioParameters, vessels []string, baselines map[string]*models.RiskAssessment) map[string]modifiedScore {
	modified := make(map[string]modifiedScore, len(baselines))

	switch scenarioName {
	case TrainingImpact:
		pct := DefaultDefectReductionPct
		if params.DefectReductionPct != nil {
			pct = *params.DefectReductionPct
		}
		for _, name := range vessels {
			baseline, ok := baselines[name]
			if !ok {
				continue
			}
			b := baseline.FactorBreakdown
			history := b.HistoryFactor * (1 - pct/100)
			score := scoring.Combine(b.AgeFactor, history, b.MOUFactor)
			modified[name] = modifiedScore{score: score, category: scoring.CategoryFor(score)}
		}

	case MaintenanceImprovement:
		pct := DefaultAgeRiskReductionPct
		if params.AgeRiskReductionPct != nil {
			pct = *params.AgeRiskReductionPct
		}
		for _, name := range vessels {
			baseline, ok := baselines[name]
			if !ok {
				continue
			}
			b := baseline.FactorBreakdown
			age := b.AgeFactor * (1 - pct/100)
			score := scoring.Combine(age, b.HistoryFactor, b.MOUFactor)
			modified[name] = modifiedScore{score: score, category: scoring.CategoryFor(score)}
		}
	}

	return modified
}

// EstimateROI projects the financial case for a scenario from its average
// per-vessel risk reduction. Annual savings round to whole dollars; payback
// and five-year ROI round to one decimal.
func EstimateROI(scenarioName string, avgRiskReduction float64) models.ROIEstimate {
	cost, ok := scenarioCosts[scenarioName]
	if !ok {
		cost = defaultScenarioCost
	}

	annualSavings := avgRiskReduction * riskPointAnnualSavings

	payback := PaybackNever
	if annualSavings > 0 {
		payback = round1(cost / annualSavings)
	}
	roi5Year := round1(((annualSavings * 5) - cost) / cost * 100)

	return models.ROIEstimate{
		EstimatedCost:      cost,
		AnnualSavings:      math.Round(annualSavings),
		PaybackPeriodYears: payback,
		ROI5YearPct:        roi5Year,
	}
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
