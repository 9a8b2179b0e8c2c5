// internal/models/inspection.go
package models

// InspectionSummary aggregates Port State Control inspection outcomes for one
// vessel. A vessel with no inspections has no summary row; that is a valid
// state, not an error.
type InspectionSummary struct {
	VesselName       string  `json:"vesselName"`
	InspectionCount  int     `json:"inspectionCount"`
	AvgDeficiencies  float64 `json:"avgDeficiencies"`
	DetentionRate    float64 `json:"detentionRate"`
	CleanRate        float64 `json:"cleanRate"`
	PerformanceTrend string  `json:"performanceTrend"`
}

// FleetCounters carries fleet-wide inspection totals alongside the per-vessel
// summaries. Informational only: logged at load time, never used in scoring.
type FleetCounters struct {
	TotalInspections  int `json:"totalInspections"`
	TotalDeficiencies int `json:"totalDeficiencies"`
}
