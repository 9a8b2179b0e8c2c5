// internal/risk/factors/factors.go
package factors

import (
	"math"

	"vessel-risk-workers/internal/models"
)

const (
	maxFactor      = 100.0
	neutralHistory = 50.0
	baseMOURisk    = 50.0
)

// ageBand is one [Min,Max) slice of the vessel-age banding model. A negative
// Max marks the open-ended top band; never model it as a numeric ceiling or
// very old vessels get misclassified.
type ageBand struct {
	Name string
	Min  float64
	Max  float64
	Base float64
}

var ageBands = []ageBand{
	{Name: "very_new", Min: 0, Max: 5, Base: 0.10},
	{Name: "new", Min: 5, Max: 15, Base: 0.25},
	{Name: "mature", Min: 15, Max: 25, Base: 0.50},
	{Name: "old", Min: 25, Max: 35, Base: 0.75},
	{Name: "very_old", Min: 35, Max: -1, Base: 1.00},
}

var trendModifiers = map[string]float64{
	"Excellent":     0.7,
	"Improving":     0.8,
	"Stable":        1.0,
	"Deteriorating": 1.3,
	"Critical":      1.5,
}

var flagModifiers = map[string]float64{
	"Panama":           1.1,
	"Marshall Islands": 1.1,
	"Korea":            0.9,
	"Japan":            0.8,
	"Norway":           0.8,
}

var typeModifiers = map[string]float64{
	"Tanker":    1.2,
	"PC(T)C":    1.0,
	"Bulk":      0.9,
	"Container": 0.85,
}

var classModifiers = map[string]float64{
	"DNV":  0.9,
	"RINA": 1.0,
	"KR":   0.9,
	"ABS":  0.9,
	"LR":   0.9,
}

// Age maps vessel age onto the banded risk scale. Within a bounded band the
// value ramps linearly from half the band's base value at band entry to the
// full base value at band exit, so the jumps at band boundaries are part of
// the banding model, not rounding artifacts. Ages in the open top band, and
// ages outside every band, score the maximum.
func Age(ageYears float64) float64 {
	for _, band := range ageBands {
		if band.Max < 0 {
			if ageYears >= band.Min {
				return maxFactor
			}
			continue
		}
		if ageYears >= band.Min && ageYears < band.Max {
			position := (ageYears - band.Min) / (band.Max - band.Min)
			return band.Base * 100 * (0.5 + 0.5*position)
		}
	}
	return maxFactor
}

// History scores aggregated inspection outcomes. A nil summary or a zero
// inspection count is a valid state (vessel never inspected) and scores the
// neutral 50.0; callers must not treat missing history as an error.
func History(summary *models.InspectionSummary) float64 {
	if summary == nil || summary.InspectionCount == 0 {
		return neutralHistory
	}

	defectRisk := math.Min(70, summary.AvgDeficiencies*8)
	detentionRisk := (summary.DetentionRate / 100) * 25
	cleanBonus := (summary.CleanRate / 100) * 15

	modifier, ok := trendModifiers[summary.PerformanceTrend]
	if !ok {
		modifier = 1.0
	}

	raw := (defectRisk + detentionRisk - cleanBonus) * modifier
	return clamp(raw, 0, 100)
}

// MOU scores the vessel's flag/type/class profile against Port State Control
// experience. Deterministic per vessel attributes; inspection data never
// feeds this factor.
func MOU(vessel models.VesselRecord) float64 {
	score := baseMOURisk
	score *= modifierOrDefault(flagModifiers, vessel.FlagState)
	score *= modifierOrDefault(typeModifiers, vessel.VesselType)
	score *= modifierOrDefault(classModifiers, vessel.ClassificationSociety)
	return clamp(score, 0, 100)
}

func modifierOrDefault(table map[string]float64, key string) float64 {
	if modifier, ok := table[key]; ok {
		return modifier
	}
	return 1.0
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
