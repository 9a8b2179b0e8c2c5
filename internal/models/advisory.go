// internal/models/advisory.go
package models

// Recommendation is one actionable item derived from a vessel's factor
// breakdown.
type Recommendation struct {
	Category        string `json:"category"`
	Priority        string `json:"priority"`
	Action          string `json:"action"`
	Description     string `json:"description"`
	EstimatedImpact string `json:"estimatedImpact"`
	Timeframe       string `json:"timeframe"`
}

// PeerComparison positions a vessel against same-type fleet peers. When no
// comparable vessels exist only PeerCount and Note are set.
type PeerComparison struct {
	PeerCount          int     `json:"peerCount"`
	AveragePeerRisk    float64 `json:"averagePeerRisk,omitempty"`
	VesselPercentile   float64 `json:"vesselPercentile,omitempty"`
	PerformanceVsPeers string  `json:"performanceVsPeers,omitempty"`
	Note               string  `json:"note,omitempty"`
}

// TrendPrediction maps the qualitative inspection trend onto an expected risk
// direction.
type TrendPrediction struct {
	Trend      string `json:"trend"`
	Confidence string `json:"confidence"`
	Note       string `json:"note,omitempty"`
}

// VesselAdvisory bundles the advisory extras attached to a full assessment.
type VesselAdvisory struct {
	Recommendations []Recommendation `json:"recommendations"`
	PeerComparison  PeerComparison   `json:"peerComparison"`
	RiskTrend       TrendPrediction  `json:"riskTrend"`
}
