// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeVesselDetails     QueryType = "vessel_details"
	QueryTypeVesselList        QueryType = "vessel_list"
	QueryTypeVesselsByType     QueryType = "vessels_by_type"
	QueryTypeInspectionSummary QueryType = "inspection_summary"
	QueryTypeFleetStatistics   QueryType = "fleet_statistics"
)
