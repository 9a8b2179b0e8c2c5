// internal/risk/advisory/advisory.go
package advisory

import (
	"math"

	"vessel-risk-workers/internal/models"
	"vessel-risk-workers/internal/risk/scoring"
)

// Recommendation trigger thresholds, applied to the published (rounded)
// factor breakdown and composite score.
const (
	ageFactorThreshold     = 70.0
	historyFactorThreshold = 60.0
	mouFactorThreshold     = 60.0
	emergencyScore         = 75.0
)

const agingVesselYears = 25.0

const noPeersNote = "No comparable vessels found"

var trendPredictions = map[string]models.TrendPrediction{
	"Excellent":     {Trend: "Decreasing", Confidence: "High"},
	"Improving":     {Trend: "Decreasing", Confidence: "Medium"},
	"Stable":        {Trend: "Stable", Confidence: "Medium"},
	"Deteriorating": {Trend: "Increasing", Confidence: "High"},
	"Critical":      {Trend: "Rapidly Increasing", Confidence: "High"},
}

// Advisor enriches a risk assessment with actionable recommendations, a
// same-type peer comparison, and a forward risk trend.
type Advisor struct {
	scorer *scoring.Scorer
}

func NewAdvisor(scorer *scoring.Scorer) *Advisor {
	return &Advisor{scorer: scorer}
}

// Advise builds the full advisory block for an already-scored vessel.
func (a *Advisor) Advise(assessment *models.RiskAssessment) models.VesselAdvisory {
	return models.VesselAdvisory{
		Recommendations: Recommendations(assessment),
		PeerComparison:  a.ComparePeers(assessment),
		RiskTrend:       a.PredictTrend(assessment.VesselName),
	}
}

// Recommendations derives per-vessel actions from the factor breakdown. Each
// rule is an independent threshold, so a vessel can collect zero to four.
func Recommendations(assessment *models.RiskAssessment) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0)
	factors := assessment.FactorBreakdown

	if factors.AgeFactor > ageFactorThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Category:        "Age Management",
			Priority:        "HIGH",
			Action:          "Implement enhanced maintenance program",
			Description:     "Vessel age is a significant risk factor. Enhanced maintenance and condition monitoring recommended.",
			EstimatedImpact: "10-15 point risk reduction",
			Timeframe:       "3-6 months",
		})
	}

	if factors.HistoryFactor > historyFactorThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Category:        "Operational Excellence",
			Priority:        "CRITICAL",
			Action:          "Crew training and procedures review",
			Description:     "Historical defect patterns indicate need for improved operational procedures.",
			EstimatedImpact: "15-25 point risk reduction",
			Timeframe:       "1-3 months",
		})
	}

	if factors.MOUFactor > mouFactorThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Category:        "Regulatory Compliance",
			Priority:        "MEDIUM",
			Action:          "Flag state and classification review",
			Description:     "Consider flag state optimization and classification society engagement.",
			EstimatedImpact: "5-10 point risk reduction",
			Timeframe:       "6-12 months",
		})
	}

	if assessment.RiskScore > emergencyScore {
		recommendations = append(recommendations, models.Recommendation{
			Category:        "Emergency Action",
			Priority:        "CRITICAL",
			Action:          "Immediate risk mitigation required",
			Description:     "Vessel presents critical risk. Immediate action required before next voyage.",
			EstimatedImpact: "Essential for continued operation",
			Timeframe:       "Immediate",
		})
	}

	return recommendations
}

// ComparePeers ranks the vessel against every other inspected vessel of the
// same type. The percentile is the share of peers scoring higher, so 100 means
// the vessel is the safest of its type.
func (a *Advisor) ComparePeers(assessment *models.RiskAssessment) models.PeerComparison {
	vesselType := assessment.VesselInfo.VesselType

	peerScores := make([]float64, 0)
	for _, name := range a.scorer.InspectedVessels() {
		if name == assessment.VesselName {
			continue
		}
		peer, ok := a.scorer.Vessel(name)
		if !ok || peer.VesselType != vesselType {
			continue
		}
		peerAssessment, err := a.scorer.Score(name)
		if err != nil {
			continue
		}
		peerScores = append(peerScores, peerAssessment.RiskScore)
	}

	if len(peerScores) == 0 {
		return models.PeerComparison{PeerCount: 0, Note: noPeersNote}
	}

	sum := 0.0
	higher := 0
	for _, score := range peerScores {
		sum += score
		if score > assessment.RiskScore {
			higher++
		}
	}
	avg := sum / float64(len(peerScores))

	performance := "Worse than Average"
	if assessment.RiskScore < avg {
		performance = "Better than Average"
	}

	return models.PeerComparison{
		PeerCount:          len(peerScores),
		AveragePeerRisk:    round1(avg),
		VesselPercentile:   round1(float64(higher) / float64(len(peerScores)) * 100),
		PerformanceVsPeers: performance,
	}
}

// PredictTrend maps the inspection performance trend onto a forward risk
// trend. Vessels past the aging threshold never predict flat or falling risk.
func (a *Advisor) PredictTrend(vesselName string) models.TrendPrediction {
	summary, ok := a.scorer.Inspection(vesselName)
	if !ok {
		return models.TrendPrediction{Trend: "Unknown", Confidence: "Low"}
	}

	prediction, ok := trendPredictions[summary.PerformanceTrend]
	if !ok {
		prediction = models.TrendPrediction{Trend: "Unknown", Confidence: "Low"}
	}

	vessel, ok := a.scorer.Vessel(vesselName)
	if ok && vessel.AgeYears > agingVesselYears {
		if prediction.Trend == "Stable" || prediction.Trend == "Decreasing" {
			prediction.Trend = "Slightly Increasing"
			prediction.Note = "Age-related risk increase expected over time"
		}
	}

	return prediction
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
