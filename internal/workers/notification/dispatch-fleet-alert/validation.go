// internal/workers/notification/dispatch-fleet-alert/validation.go
package dispatchfleetalert

import (
	"vessel-risk-workers/internal/common/validation"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"reportId": {
				Type:        "string",
				Description: "Identifier of the fleet report that produced the recommendations",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(100),
			},
			"fleetOverview": {
				Type:        "object",
				Description: "Fleet-wide aggregates rendered into the alert body",
				Properties: map[string]validation.Property{
					"totalVessels":        {Type: "number", Minimum: floatPtr(0)},
					"averageRiskScore":    {Type: "number", Minimum: floatPtr(0), Maximum: floatPtr(100)},
					"highRiskVessels":     {Type: "number", Minimum: floatPtr(0)},
					"criticalRiskVessels": {Type: "number", Minimum: floatPtr(0)},
				},
				Required: []string{"totalVessels", "averageRiskScore"},
			},
			"recommendations": {
				Type:        "array",
				Description: "Fleet recommendations; CRITICAL and HIGH priorities trigger alerts",
				Items: &validation.Property{
					Type: "object",
					Properties: map[string]validation.Property{
						"priority":  {Type: "string", MinLength: intPtr(1)},
						"category":  {Type: "string", MinLength: intPtr(1)},
						"action":    {Type: "string", MinLength: intPtr(1)},
						"impact":    {Type: "string"},
						"timeframe": {Type: "string"},
					},
					Required: []string{"priority", "category", "action"},
				},
			},
		},
		Required:             []string{"reportId", "fleetOverview"},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"alertId": {
				Type:        "string",
				Description: "Unique identifier assigned to this dispatch",
			},
			"channels": {
				Type:        "array",
				Description: "Channels that actually delivered",
				Items:       &validation.Property{Type: "string", Enum: []string{"email", "sms"}},
			},
			"status": {
				Type:        "string",
				Description: "Overall dispatch outcome",
				Enum:        []string{StatusSent, StatusSuppressed, StatusSkipped},
			},
			"sentAt": {
				Type:        "string",
				Description: "Dispatch timestamp",
			},
		},
		Required:             []string{"alertId", "channels", "status", "sentAt"},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}
