// internal/workers/data-access/search-assessment-history/validation.go
package searchassessmenthistory

import "vessel-risk-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"vesselName"},
		Properties: map[string]validation.Property{
			"vesselName": {
				Type:        "string",
				Description: "Vessel to look up past assessments for",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(255),
			},
			"maxResults": {
				Type:        "number",
				Description: "Maximum number of assessments to return",
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"assessments": {
				Type:        "array",
				Description: "Archived assessments, newest first",
			},
			"totalHits": {
				Type:        "number",
				Description: "Total number of matching assessments",
			},
			"searchTime": {
				Type:        "number",
				Description: "Search round-trip time in milliseconds",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
