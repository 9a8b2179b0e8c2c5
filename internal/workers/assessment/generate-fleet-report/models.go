// internal/workers/assessment/generate-fleet-report/models.go
package generatefleetreport

import (
	"github.com/elastic/go-elasticsearch/v8"

	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/fleetdata"
	"vessel-risk-workers/internal/models"
)

type Input struct {
	TopRiskCount int `json:"topRiskCount,omitempty"`
}

// Output repeats the overview and recommendations as top-level variables so
// the downstream alert dispatch task can consume them without unpacking the
// full report.
type Output struct {
	Report          *models.FleetReport          `json:"fleetReport"`
	ReportID        string                       `json:"reportId"`
	FleetOverview   models.FleetOverview         `json:"fleetOverview"`
	Recommendations []models.FleetRecommendation `json:"recommendations"`
}

// ES may be nil; the service then skips report archiving for that instance.
type ServiceDependencies struct {
	Provider *fleetdata.Provider
	ES       *elasticsearch.Client
	Logger   logger.Logger
}
