// internal/risk/scoring/scorer.go
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"vessel-risk-workers/internal/models"
	"vessel-risk-workers/internal/risk/factors"
)

// Fixed combination weights. They sum to 1.0 and are never vessel-dependent.
const (
	AgeWeight     = 0.4
	HistoryWeight = 0.4
	MOUWeight     = 0.2
)

// ErrVesselNotFound marks a vessel missing from master data. Batch callers
// skip the vessel and keep going; a single unresolvable name must never abort
// the rest of a fleet operation.
var ErrVesselNotFound = errors.New("vessel not found in master data")

// Scorer computes composite risk assessments over an immutable dataset.
// Vessel and inspection collections are held as maps keyed by vessel name, so
// every lookup is O(1) regardless of fleet size. The memo holds the
// last-computed assessment per vessel behind a mutex; scoring is idempotent,
// the memo only saves recomputation during fleet-wide passes.
type Scorer struct {
	vessels     map[string]models.VesselRecord
	inspections map[string]models.InspectionSummary

	mu   sync.Mutex
	memo map[string]models.RiskAssessment
}

func NewScorer(vessels []models.VesselRecord, inspections []models.InspectionSummary) *Scorer {
	s := &Scorer{
		vessels:     make(map[string]models.VesselRecord, len(vessels)),
		inspections: make(map[string]models.InspectionSummary, len(inspections)),
		memo:        make(map[string]models.RiskAssessment),
	}
	for _, v := range vessels {
		s.vessels[v.VesselName] = v
	}
	for _, i := range inspections {
		s.inspections[i.VesselName] = i
	}
	return s
}

// Combine folds the three sub-factors under the fixed weights and clamps the
// result to [0,100]. No rounding here; callers that publish a score round to
// one decimal themselves.
func Combine(age, history, mou float64) float64 {
	return clamp(age*AgeWeight+history*HistoryWeight+mou*MOUWeight, 0, 100)
}

/// CategoryFor buckets a score with inclusive upper bounds: 25.0 is still LOW,
// 25.01 is MEDIUM.
func CategoryFor(score float64) models.RiskCategory {
	switch {
	case score <= 25:
		return models.RiskCategoryLow
	case score <= 50:
		return models.RiskCategoryMedium
	case score <= 75:
		return models.RiskCategoryHigh
	default:
		return models.RiskCategoryCritical
	}
}

// Score computes the assessment for one vessel. The category is derived from
// the unrounded composite, so boundary scores like 25.04 classify as MEDIUM
// even though they display as 25.0.
func (s *Scorer) Score(vesselName string) (*models.RiskAssessment, error) {
	vessel, ok := s.vessels[vesselName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVesselNotFound, vesselName)
	}

	s.mu.Lock()
	if cached, ok := s.memo[vesselName]; ok {
		s.mu.Unlock()
		return &cached, nil
	}
	s.mu.Unlock()

	ageFactor := factors.Age(vessel.AgeYears)

	var summary *models.InspectionSummary
	if insp, ok := s.inspections[vesselName]; ok {
		summary = &insp
	}
	historyFactor := factors.History(summary)

	mouFactor := factors.MOU(vessel)

	score := Combine(ageFactor, historyFactor, mouFactor)
	category := CategoryFor(score)

	assessment := models.RiskAssessment{
		VesselName:      vesselName,
		RiskScore:       round1(score),
		RiskCategory:    category,
		ConfidenceLower: math.Max(0, score-5),
		ConfidenceUpper: math.Min(100, score+5),
		FactorBreakdown: models.FactorBreakdown{
			AgeFactor:     round1(ageFactor),
			HistoryFactor: round1(historyFactor),
			MOUFactor:     round1(mouFactor),
			AgeWeight:     AgeWeight,
			HistoryWeight: HistoryWeight,
			MOUWeight:     MOUWeight,
		},
		VesselInfo: models.VesselSnapshot{
			AgeYears:   vessel.AgeYears,
			VesselType: vessel.VesselType,
			FlagState:  vessel.FlagState,
			BuiltYear:  vessel.BuiltYear,
			DWT:        vessel.DWT,
		},
		AssessedAt: time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.memo[vesselName] = assessment
	s.mu.Unlock()

	result := assessment
	return &result, nil
}

// Vessel returns the master-data record for a name.
func (s *Scorer) Vessel(vesselName string) (models.VesselRecord, bool) {
	vessel, ok := s.vessels[vesselName]
	return vessel, ok
}

// Inspection returns the inspection summary for a name. The second return is
// false for vessels that were never inspected.
func (s *Scorer) Inspection(vesselName string) (models.InspectionSummary, bool) {
	summary, ok := s.inspections[vesselName]
	return summary, ok
}

// InspectedVessels lists every vessel with inspection data, sorted by name so
// fleet-wide passes are deterministic.
func (s *Scorer) InspectedVessels() []string {
	names := make([]string, 0, len(s.inspections))
	for name := range s.inspections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
