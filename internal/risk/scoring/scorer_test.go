// internal/risk/scoring/scorer_test.go
package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vessel-risk-workers/internal/models"
)

// ==========================
// Test Fixtures
// ==========================

func testFleet() ([]models.VesselRecord, []models.InspectionSummary) {
	vessels := []models.VesselRecord{
		{
			VesselName:            "YOUNG SHIN",
			AgeYears:              30,
			BuiltYear:             1996,
			VesselType:            "Tanker",
			FlagState:             "Panama",
			ClassificationSociety: "BV",
			DWT:                   45000,
		},
		{
			VesselName:            "HAE SHIN",
			AgeYears:              10,
			BuiltYear:             2016,
			VesselType:            "Container",
			FlagState:             "Korea",
			ClassificationSociety: "KR",
			DWT:                   85000,
		},
		{
			VesselName:            "GMT ASTRO",
			AgeYears:              2,
			BuiltYear:             2024,
			VesselType:            "PC(T)C",
			FlagState:             "Japan",
			ClassificationSociety: "DNV",
			DWT:                   18000,
		},
	}
	inspections := []models.InspectionSummary{
		{
			VesselName:       "YOUNG SHIN",
			InspectionCount:  12,
			AvgDeficiencies:  5,
			DetentionRate:    10,
			CleanRate:        20,
			PerformanceTrend: "Stable",
		},
		{
			VesselName:       "HAE SHIN",
			InspectionCount:  8,
			AvgDeficiencies:  1.5,
			DetentionRate:    0,
			CleanRate:        60,
			PerformanceTrend: "Improving",
		},
	}
	return vessels, inspections
}

// ==========================
// Composite Scoring Tests
// ==========================

func TestScore_WorkedExample(t *testing.T) {
	scorer := NewScorer(testFleet())

	// age=30 -> 56.25, history -> 39.5, mou 50*1.1*1.2 -> 66.0
	// composite = 22.5 + 15.8 + 13.2 = 51.5 -> HIGH
	assessment, err := scorer.Score("YOUNG SHIN")
	require.NoError(t, err)

	assert.Equal(t, "YOUNG SHIN", assessment.VesselName)
	assert.InDelta(t, 51.5, assessment.RiskScore, 1e-9)
	assert.Equal(t, models.RiskCategoryHigh, assessment.RiskCategory)
	assert.InDelta(t, 56.3, assessment.FactorBreakdown.AgeFactor, 1e-9) // 56.25 rounds to 56.3
	assert.InDelta(t, 39.5, assessment.FactorBreakdown.HistoryFactor, 1e-9)
	assert.InDelta(t, 66.0, assessment.FactorBreakdown.MOUFactor, 1e-9)
	assert.Equal(t, 0.4, assessment.FactorBreakdown.AgeWeight)
	assert.Equal(t, 0.4, assessment.FactorBreakdown.HistoryWeight)
	assert.Equal(t, 0.2, assessment.FactorBreakdown.MOUWeight)
}

func TestScore_VesselSnapshot(t *testing.T) {
	scorer := NewScorer(testFleet())

	assessment, err := scorer.Score("YOUNG SHIN")
	require.NoError(t, err)

	assert.Equal(t, 30.0, assessment.VesselInfo.AgeYears)
	assert.Equal(t, "Tanker", assessment.VesselInfo.VesselType)
	assert.Equal(t, "Panama", assessment.VesselInfo.FlagState)
	assert.Equal(t, 1996, assessment.VesselInfo.BuiltYear)
	assert.Equal(t, 45000, assessment.VesselInfo.DWT)
	assert.NotEmpty(t, assessment.AssessedAt)
}

func TestScore_ConfidenceInterval(t *testing.T) {
	scorer := NewScorer(testFleet())

	assessment, err := scorer.Score("YOUNG SHIN")
	require.NoError(t, err)

	assert.InDelta(t, 46.5, assessment.ConfidenceLower, 1e-9)
	assert.InDelta(t, 56.5, assessment.ConfidenceUpper, 1e-9)
}

func TestScore_MissingHistoryDefaultsNeutral(t *testing.T) {
	scorer := NewScorer(testFleet())

	// GMT ASTRO has no inspection row: history factor must default to 50,
	// never error. age=2 -> 7.0, mou 50*0.8*1.0*0.9 = 36.0
	// composite = 2.8 + 20 + 7.2 = 30.0
	assessment, err := scorer.Score("GMT ASTRO")
	require.NoError(t, err)

	assert.InDelta(t, 50.0, assessment.FactorBreakdown.HistoryFactor, 1e-9)
	assert.InDelta(t, 30.0, assessment.RiskScore, 1e-9)
	assert.Equal(t, models.RiskCategoryMedium, assessment.RiskCategory)
}

func TestScore_VesselNotFound(t *testing.T) {
	scorer := NewScorer(testFleet())

	assessment, err := scorer.Score("GHOST SHIP")
	assert.Nil(t, assessment)
	assert.ErrorIs(t, err, ErrVesselNotFound)
}

func TestScore_Idempotent(t *testing.T) {
	scorer := NewScorer(testFleet())

	first, err := scorer.Score("HAE SHIN")
	require.NoError(t, err)
	second, err := scorer.Score("HAE SHIN")
	require.NoError(t, err)

	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.Equal(t, first.RiskCategory, second.RiskCategory)
	assert.Equal(t, first.FactorBreakdown, second.FactorBreakdown)
}

func TestScore_MemoReturnsCopies(t *testing.T) {
	scorer := NewScorer(testFleet())

	first, err := scorer.Score("HAE SHIN")
	require.NoError(t, err)
	first.RiskScore = -999

	second, err := scorer.Score("HAE SHIN")
	require.NoError(t, err)
	assert.NotEqual(t, -999.0, second.RiskScore)
}

// ==========================
// Combine / Category Tests
// ==========================

func TestCombine_MatchesWeightedClamp(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		age := rng.Float64() * 100
		history := rng.Float64() * 100
		mou := rng.Float64() * 100

		expected := age*0.4 + history*0.4 + mou*0.2
		if expected < 0 {
			expected = 0
		}
		if expected > 100 {
			expected = 100
		}
		assert.InDelta(t, expected, Combine(age, history, mou), 1e-9)
	}
}

func TestCombine_Clamps(t *testing.T) {
	assert.Equal(t, 100.0, Combine(200, 200, 200))
	assert.Equal(t, 0.0, Combine(-50, -50, -50))
}

func TestCategoryFor_InclusiveUpperBounds(t *testing.T) {
	tests := []struct {
		score    float64
		expected models.RiskCategory
	}{
		{0, models.RiskCategoryLow},
		{25, models.RiskCategoryLow},
		{25.01, models.RiskCategoryMedium},
		{50, models.RiskCategoryMedium},
		{50.01, models.RiskCategoryHigh},
		{75, models.RiskCategoryHigh},
		{75.01, models.RiskCategoryCritical},
		{100, models.RiskCategoryCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CategoryFor(tt.score), "score %.2f", tt.score)
	}
}

func TestRiskCategory_Rank(t *testing.T) {
	assert.Less(t, models.RiskCategoryLow.Rank(), models.RiskCategoryMedium.Rank())
	assert.Less(t, models.RiskCategoryMedium.Rank(), models.RiskCategoryHigh.Rank())
	assert.Less(t, models.RiskCategoryHigh.Rank(), models.RiskCategoryCritical.Rank())

	// The string ordering these ranks replace puts CRITICAL first
	// alphabetically; make sure nobody reintroduces it.
	assert.True(t, string(models.RiskCategoryCritical) < string(models.RiskCategoryHigh))
	assert.Greater(t, models.RiskCategoryCritical.Rank(), models.RiskCategoryHigh.Rank())
}

// ==========================
// Dataset Accessor Tests
// ==========================

func TestInspectedVessels_SortedAndComplete(t *testing.T) {
	scorer := NewScorer(testFleet())

	names := scorer.InspectedVessels()
	assert.Equal(t, []string{"HAE SHIN", "YOUNG SHIN"}, names)
}

func TestVesselAndInspectionAccessors(t *testing.T) {
	scorer := NewScorer(testFleet())

	vessel, ok := scorer.Vessel("GMT ASTRO")
	require.True(t, ok)
	assert.Equal(t, "PC(T)C", vessel.VesselType)

	_, ok = scorer.Inspection("GMT ASTRO")
	assert.False(t, ok)

	summary, ok := scorer.Inspection("YOUNG SHIN")
	require.True(t, ok)
	assert.Equal(t, 12, summary.InspectionCount)

	_, ok = scorer.Vessel("GHOST SHIP")
	assert.False(t, ok)
}
