// internal/workers/assessment/generate-risk-matrix/validation.go
package generateriskmatrix

import (
	"vessel-risk-workers/internal/common/validation"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"vessels": {
				Type:        "array",
				Description: "Vessel names to place on the matrix; omit for the whole fleet",
				Items: &validation.Property{
					Type:      "string",
					MinLength: intPtr(1),
					MaxLength: intPtr(255),
				},
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"riskMatrix": {
				Type:        "object",
				Description: "5x5 severity by probability grid with vessel distribution",
			},
			"totalVessels": {
				Type:        "number",
				Description: "Number of vessels successfully placed on the matrix",
			},
			"highRiskVessels": {
				Type:        "array",
				Description: "Vessels sitting in cells with risk level above 15",
				Items:       &validation.Property{Type: "string"},
			},
		},
		Required:             []string{"riskMatrix", "totalVessels"},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
