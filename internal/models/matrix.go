// internal/models/matrix.go
package models

// MatrixSize is the fixed edge length of the severity×probability grid.
const MatrixSize = 5

// RiskMatrix is the 5×5 severity×probability grid. Row 0 is the most severe
// (Catastrophic) row; column 0 the lowest probability. VesselDistribution is
// keyed "row_col" so the structure serializes cleanly to JSON. Rebuilt
// wholesale on every invocation, never updated incrementally.
type RiskMatrix struct {
	Matrix             [MatrixSize][MatrixSize]int `json:"matrix"`
	RiskLevels         [MatrixSize][MatrixSize]int `json:"riskLevels"`
	ProbabilityLevels  []string                    `json:"probabilityLevels"`
	SeverityLevels     []string                    `json:"severityLevels"`
	VesselDistribution map[string][]string         `json:"vesselDistribution"`
	TotalVessels       int                         `json:"totalVessels"`
	GeneratedAt        string                      `json:"generatedAt"`
}
