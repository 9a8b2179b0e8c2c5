// internal/workers/assessment/generate-fleet-report/service.go
package generatefleetreport

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/fleetdata"
	"vessel-risk-workers/internal/models"
	"vessel-risk-workers/internal/risk/fleet"
)

type Service struct {
	config   *Config
	logger   logger.Logger
	provider *fleetdata.Provider
	esClient *elasticsearch.Client
	tracer   trace.Tracer
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:   config,
		logger:   deps.Logger,
		provider: deps.Provider,
		esClient: deps.ES,
		tracer:   otel.Tracer(TaskType),
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, span := s.tracer.Start(ctx, "fleet.report")
	defer span.End()

	topN := input.TopRiskCount
	if topN <= 0 {
		topN = s.config.TopRiskCount
	}

	scorer, err := s.provider.Scorer(ctx)
	if err != nil {
		return nil, err
	}

	report := fleet.NewAggregator(scorer).Report(topN)
	report.ReportID = uuid.New().String()

	span.SetAttributes(
		attribute.String("report.id", report.ReportID),
		attribute.Int("report.total_vessels", report.FleetOverview.TotalVessels),
		attribute.Float64("report.average_risk", report.FleetOverview.AverageRiskScore),
	)

	s.archiveReport(ctx, report)

	s.logger.Info("fleet report generated", map[string]interface{}{
		"reportId":        report.ReportID,
		"totalVessels":    report.FleetOverview.TotalVessels,
		"averageRisk":     report.FleetOverview.AverageRiskScore,
		"criticalVessels": report.FleetOverview.CriticalRiskVessels,
		"recommendations": len(report.FleetRecommendations),
	})

	return &Output{
		Report:          report,
		ReportID:        report.ReportID,
		FleetOverview:   report.FleetOverview,
		Recommendations: report.FleetRecommendations,
	}, nil
}

// archiveReport indexes the report keyed by its ID. Best effort: a missing
// client, a transport error or a rejected document never fails the job.
func (s *Service) archiveReport(ctx context.Context, report *models.FleetReport) {
	if s.esClient == nil || !s.config.ArchiveEnabled {
		return
	}

	doc, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn("failed to marshal fleet report for archive", map[string]interface{}{
			"reportId": report.ReportID,
			"error":    err.Error(),
		})
		return
	}

	res, err := s.esClient.Index(
		s.config.ReportIndex,
		strings.NewReader(string(doc)),
		s.esClient.Index.WithDocumentID(report.ReportID),
		s.esClient.Index.WithContext(ctx),
	)
	if err != nil {
		s.logger.Warn("fleet report archive write failed", map[string]interface{}{
			"reportId": report.ReportID,
			"index":    s.config.ReportIndex,
			"error":    err.Error(),
		})
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logger.Warn("fleet report archive write rejected", map[string]interface{}{
			"reportId": report.ReportID,
			"index":    s.config.ReportIndex,
			"status":   res.Status(),
		})
		return
	}

	s.logger.Debug("fleet report archived", map[string]interface{}{
		"reportId": report.ReportID,
		"index":    s.config.ReportIndex,
	})
}
