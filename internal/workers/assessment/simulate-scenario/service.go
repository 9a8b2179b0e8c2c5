// internal/workers/assessment/simulate-scenario/service.go
package simulatescenario

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/fleetdata"
	"vessel-risk-workers/internal/risk/scenario"
)

type Service struct {
	config   *Config
	logger   logger.Logger
	provider *fleetdata.Provider
	tracer   trace.Tracer
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:   config,
		logger:   deps.Logger,
		provider: deps.Provider,
		tracer:   otel.Tracer(TaskType),
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, span := s.tracer.Start(ctx, "scenario.simulate", trace.WithAttributes(
		attribute.String("scenario.name", input.ScenarioName),
	))
	defer span.End()

	scorer, err := s.provider.Scorer(ctx)
	if err != nil {
		return nil, err
	}

	simulator := scenario.NewSimulator(scorer)
	result := simulator.Run(input.ScenarioName, input.Parameters)
	result.SimulationID = uuid.New().String()

	known := scenario.IsKnown(input.ScenarioName)
	if !known {
		s.logger.Warn("unknown scenario requested", map[string]interface{}{
			"scenarioName": input.ScenarioName,
			"simulationId": result.SimulationID,
		})
	}

	span.SetAttributes(
		attribute.Int("scenario.vessels_analyzed", len(result.VesselsAnalyzed)),
		attribute.Bool("scenario.known", known),
	)

	s.logger.Info("scenario simulation finished", map[string]interface{}{
		"scenarioName":         input.ScenarioName,
		"simulationId":         result.SimulationID,
		"vesselsAnalyzed":      len(result.VesselsAnalyzed),
		"vesselsImproved":      result.Summary.VesselsImproved,
		"averageRiskReduction": result.Summary.AverageRiskReduction,
	})

	return &Output{
		Result:        result,
		SimulationID:  result.SimulationID,
		KnownScenario: known,
	}, nil
}
