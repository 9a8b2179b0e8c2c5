// internal/models/report.go
package models

type FleetOverview struct {
	TotalVessels        int                  `json:"totalVessels"`
	AverageRiskScore    float64              `json:"averageRiskScore"`
	RiskDistribution    map[RiskCategory]int `json:"riskDistribution"`
	HighRiskVessels     int                  `json:"highRiskVessels"`
	CriticalRiskVessels int                  `json:"criticalRiskVessels"`
}

// TopRiskVessel is one row of the report's worst-first ranking.
// PrimaryRiskFactor names the largest of the three sub-factors.
type TopRiskVessel struct {
	VesselName        string       `json:"vesselName"`
	RiskScore         float64      `json:"riskScore"`
	RiskCategory      RiskCategory `json:"riskCategory"`
	PrimaryRiskFactor string       `json:"primaryRiskFactor"`
}

type MatrixSummary struct {
	TotalVesselsInMatrix int `json:"totalVesselsInMatrix"`
	HighRiskCells        int `json:"highRiskCells"`
	VesselsInHighRisk    int `json:"vesselsInHighRisk"`
}

type FleetRecommendation struct {
	Priority  string `json:"priority"`
	Category  string `json:"category"`
	Action    string `json:"action"`
	Impact    string `json:"impact"`
	Timeframe string `json:"timeframe"`
}

// FleetReport is the aggregate output consumed by external reporting and the
// alert dispatcher. Plain serializable data, no framework types.
type FleetReport struct {
	ReportID             string                `json:"reportId"`
	ReportTitle          string                `json:"reportTitle"`
	GeneratedAt          string                `json:"generatedAt"`
	FleetOverview        FleetOverview         `json:"fleetOverview"`
	TopRiskVessels       []TopRiskVessel       `json:"topRiskVessels"`
	RiskMatrixSummary    MatrixSummary         `json:"riskMatrixSummary"`
	FleetRecommendations []FleetRecommendation `json:"fleetRecommendations"`
	VesselDetails        []RiskAssessment      `json:"vesselDetails"`
}
