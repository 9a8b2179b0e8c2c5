// internal/workers/data-access/query-vessel-data/validation.go
package queryvesseldata

import "vessel-risk-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"queryType"},
		Properties: map[string]validation.Property{
			"queryType": {
				Type:        "string",
				Description: "Query to dispatch (vessel_details, vessel_list, vessels_by_type, inspection_summary, fleet_statistics)",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(100),
			},
			"vesselName": {
				Type:        "string",
				Description: "Vessel name for single-vessel queries",
				MaxLength:   intPtr(255),
			},
			"vesselType": {
				Type:        "string",
				Description: "Vessel type filter for vessels_by_type",
				MaxLength:   intPtr(100),
			},
			"limit": {
				Type:        "number",
				Description: "Maximum number of rows to return",
			},
			"filters": {
				Type:        "object",
				Description: "Additional query filters",
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"data": {
				Type:        "object",
				Description: "Query result rows or single record",
			},
			"rowCount": {
				Type:        "number",
				Description: "Number of rows returned",
			},
			"queryExecutionTime": {
				Type:        "number",
				Description: "Query execution time in milliseconds",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
