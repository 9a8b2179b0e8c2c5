// internal/workers/data-access/query-vessel-data/models.go
package queryvesseldata

import "vessel-risk-workers/internal/models"

type Input struct {
	QueryType  string                 `json:"queryType"`
	VesselName string                 `json:"vesselName,omitempty"`
	VesselType string                 `json:"vesselType,omitempty"`
	Limit      int                    `json:"limit,omitempty"`
	Filters    map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

// Export constants for external use
var (
	QueryTypeVesselDetails     = models.QueryTypeVesselDetails
	QueryTypeVesselList        = models.QueryTypeVesselList
	QueryTypeVesselsByType     = models.QueryTypeVesselsByType
	QueryTypeInspectionSummary = models.QueryTypeInspectionSummary
	QueryTypeFleetStatistics   = models.QueryTypeFleetStatistics
)
