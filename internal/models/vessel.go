// internal/models/vessel.go
package models

// VesselRecord is the immutable master-data row for one vessel, keyed by
// VesselName. Owned by the vessel-master dataset; read-only to the risk core.
type VesselRecord struct {
	VesselName            string  `json:"vesselName"`
	AgeYears              float64 `json:"ageYears"`
	BuiltYear             int     `json:"builtYear"`
	VesselType            string  `json:"vesselType"`
	FlagState             string  `json:"flagState"`
	ClassificationSociety string  `json:"classificationSociety"`
	DWT                   int     `json:"dwt"`
}
