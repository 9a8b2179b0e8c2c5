// internal/workers/assessment/generate-risk-matrix/service.go
package generateriskmatrix

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/fleetdata"
	"vessel-risk-workers/internal/models"
	"vessel-risk-workers/internal/risk/matrix"
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
	ctx, span := s.tracer.Start(ctx, "matrix.generate", trace.WithAttributes(
		attribute.Int("matrix.vessels_requested", len(input.Vessels)),
	))
	defer span.End()

	scorer, err := s.provider.Scorer(ctx)
	if err != nil {
		return nil, err
	}

	m := matrix.Build(scorer, input.Vessels)
	highRisk := collectHighRiskVessels(m)

	span.SetAttributes(
		attribute.Int("matrix.vessels_placed", m.TotalVessels),
		attribute.Int("matrix.high_risk_vessels", len(highRisk)),
	)

	s.logger.Info("risk matrix generated", map[string]interface{}{
		"requestedVessels": len(input.Vessels),
		"placedVessels":    m.TotalVessels,
		"highRiskVessels":  len(highRisk),
	})

	return &Output{
		Matrix:          m,
		TotalVessels:    m.TotalVessels,
		HighRiskVessels: highRisk,
	}, nil
}

// collectHighRiskVessels walks the grid in row-major order so the result is
// deterministic regardless of map iteration.
func collectHighRiskVessels(m *models.RiskMatrix) []string {
	names := make([]string, 0)
	for i := 0; i < models.MatrixSize; i++ {
		for j := 0; j < models.MatrixSize; j++ {
			if !matrix.IsHighRisk(m.RiskLevels[i][j]) {
				continue
			}
			names = append(names, m.VesselDistribution[fmt.Sprintf("%d_%d", i, j)]...)
		}
	}
	return names
}
