// internal/workers/assessment/simulate-scenario/validation.go
package simulatescenario

import (
	"vessel-risk-workers/internal/common/validation"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"scenarioName": {
				Type:        "string",
				Description: "Scenario to simulate, e.g. training_impact or maintenance_improvement",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(100),
			},
			"parameters": {
				Type:        "object",
				Description: "Scenario perturbation parameters",
				Properties: map[string]validation.Property{
					"defectReductionPct": {
						Type:        "number",
						Description: "Percent reduction of the history factor (training_impact)",
						Minimum:     floatPtr(0),
						Maximum:     floatPtr(100),
					},
					"ageRiskReductionPct": {
						Type:        "number",
						Description: "Percent reduction of the age factor (maintenance_improvement)",
						Minimum:     floatPtr(0),
						Maximum:     floatPtr(100),
					},
					"vessels": {
						Type: "array",
						Items: &validation.Property{
							Type:      "string",
							MinLength: intPtr(1),
							MaxLength: intPtr(255),
						},
					},
				},
			},
		},
		Required:             []string{"scenarioName"},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"scenarioResult": {
				Type:        "object",
				Description: "Per-vessel outcomes, summary aggregates and ROI estimate",
			},
			"simulationId": {
				Type:        "string",
				Description: "Unique identifier assigned to this simulation run",
			},
			"knownScenario": {
				Type:        "boolean",
				Description: "False when the scenario name has no definition",
			},
		},
		Required:             []string{"scenarioResult", "simulationId", "knownScenario"},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}
