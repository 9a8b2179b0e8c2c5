// internal/workers/assessment/simulate-scenario/models.go
package simulatescenario

import (
	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/fleetdata"
	"vessel-risk-workers/internal/models"
)

type Input struct {
	ScenarioName string                    `json:"scenarioName"`
	Parameters   models.ScenarioParameters `json:"parameters,omitempty"`
}

// Output carries the full result plus flat variables for BPMN gateways.
// KnownScenario distinguishes "nothing to perturb" from "no such scenario",
// since an unknown name is not a job failure.
type Output struct {
	Result        *models.ScenarioResult `json:"scenarioResult"`
	SimulationID  string                 `json:"simulationId"`
	KnownScenario bool                   `json:"knownScenario"`
}

type ServiceDependencies struct {
	Provider *fleetdata.Provider
	Logger   logger.Logger
}
