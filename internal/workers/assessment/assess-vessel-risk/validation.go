// internal/workers/assessment/assess-vessel-risk/validation.go
package assessvesselrisk

import "vessel-risk-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"vesselName"},
		Properties: map[string]validation.Property{
			"vesselName": {
				Type:        "string",
				Description: "Vessel to assess, as named in master data",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(255),
			},
			"includeAdvisory": {
				Type:        "boolean",
				Description: "Attach recommendations, peer comparison and trend prediction",
			},
			"forceRefresh": {
				Type:        "boolean",
				Description: "Skip the cache read and recompute the assessment",
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"riskAssessment": {
				Type:        "object",
				Description: "Full composite risk assessment",
			},
			"riskScore": {
				Type:        "number",
				Description: "Composite score, one decimal, for gateway conditions",
			},
			"riskCategory": {
				Type:        "string",
				Description: "LOW, MEDIUM, HIGH or CRITICAL",
				Enum:        []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"},
			},
			"advisory": {
				Type:        "object",
				Description: "Advisory extras, present when requested",
			},
			"fromCache": {
				Type:        "boolean",
				Description: "Whether the assessment was served from the cache",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
