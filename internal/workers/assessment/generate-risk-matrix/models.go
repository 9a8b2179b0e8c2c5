// internal/workers/assessment/generate-risk-matrix/models.go
package generateriskmatrix

import (
	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/fleetdata"
	"vessel-risk-workers/internal/models"
)

// Input selects the vessels to place on the matrix. A nil Vessels list means
// the whole inspected fleet; an explicitly empty list yields an empty matrix.
type Input struct {
	Vessels []string `json:"vessels,omitempty"`
}

type Output struct {
	Matrix          *models.RiskMatrix `json:"riskMatrix"`
	TotalVessels    int                `json:"totalVessels"`
	HighRiskVessels []string           `json:"highRiskVessels"`
}

type ServiceDependencies struct {
	Provider *fleetdata.Provider
	Logger   logger.Logger
}
