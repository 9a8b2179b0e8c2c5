// internal/workers/assessment/assess-vessel-risk/models.go
package assessvesselrisk

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/fleetdata"
	"vessel-risk-workers/internal/models"
)

type Input struct {
	VesselName      string `json:"vesselName"`
	IncludeAdvisory bool   `json:"includeAdvisory,omitempty"`
	ForceRefresh    bool   `json:"forceRefresh,omitempty"`
}

type Output struct {
	Assessment *models.RiskAssessment `json:"riskAssessment"`
	Advisory   *models.VesselAdvisory `json:"advisory,omitempty"`
	FromCache  bool                   `json:"fromCache"`
}

// ServiceDependencies carries the external clients. Cache and ES may be nil;
// the service then skips caching and archiving for that instance.
type ServiceDependencies struct {
	Provider *fleetdata.Provider
	Cache    *redis.Client
	ES       *elasticsearch.Client
	Logger   logger.Logger
}
