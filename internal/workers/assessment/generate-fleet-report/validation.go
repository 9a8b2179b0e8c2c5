// internal/workers/assessment/generate-fleet-report/validation.go
package generatefleetreport

import (
	"vessel-risk-workers/internal/common/validation"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"topRiskCount": {
				Type:        "number",
				Description: "Depth of the worst-first vessel ranking",
				Minimum:     floatPtr(1),
				Maximum:     floatPtr(50),
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"fleetReport": {
				Type:        "object",
				Description: "Full fleet report with overview, ranking, matrix summary and vessel details",
			},
			"reportId": {
				Type:        "string",
				Description: "Unique identifier assigned to this report",
			},
			"fleetOverview": {
				Type:        "object",
				Description: "Fleet-wide score aggregates and category distribution",
			},
			"recommendations": {
				Type:        "array",
				Description: "Rule-based fleet recommendations",
				Items:       &validation.Property{Type: "object"},
			},
		},
		Required:             []string{"fleetReport", "reportId", "fleetOverview", "recommendations"},
		AdditionalProperties: false,
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
