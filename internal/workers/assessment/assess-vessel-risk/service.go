// internal/workers/assessment/assess-vessel-risk/service.go
package assessvesselrisk

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vessel-risk-workers/internal/common/errors"
	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/common/metrics"
	"vessel-risk-workers/internal/fleetdata"
	"vessel-risk-workers/internal/models"
	"vessel-risk-workers/internal/risk/advisory"
	"vessel-risk-workers/internal/risk/scoring"
)

const cacheKeyPrefix = "vessel:assessment:"

// CacheKey returns the Redis key holding a vessel's cached assessment.
func CacheKey(vesselName string) string {
	return cacheKeyPrefix + vesselName
}

type Service struct {
	config   *Config
	logger   logger.Logger
	provider *fleetdata.Provider
	cache    *redis.Client
	esClient *elasticsearch.Client
	tracer   trace.Tracer
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:   config,
		logger:   deps.Logger,
		provider: deps.Provider,
		cache:    deps.Cache,
		esClient: deps.ES,
		tracer:   otel.Tracer(TaskType),
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, span := s.tracer.Start(ctx, "assessment.execute", trace.WithAttributes(
		attribute.String("vessel.name", input.VesselName),
		attribute.Bool("vessel.force_refresh", input.ForceRefresh),
	))
	defer span.End()

	key := CacheKey(input.VesselName)

	var assessment *models.RiskAssessment
	fromCache := false

	if s.cache != nil && !input.ForceRefresh {
		assessment = s.cachedAssessment(ctx, key)
		fromCache = assessment != nil
	}

	if assessment == nil {
		fresh, err := s.assess(ctx, input.VesselName)
		if err != nil {
			return nil, err
		}
		assessment = fresh

		s.storeAssessment(ctx, key, assessment)
		s.archiveAssessment(ctx, assessment)
	}

	var vesselAdvisory *models.VesselAdvisory
	if input.IncludeAdvisory {
		adv, err := s.advise(ctx, assessment)
		if err != nil {
			return nil, err
		}
		vesselAdvisory = adv
	}

	return &Output{
		Assessment: assessment,
		Advisory:   vesselAdvisory,
		FromCache:  fromCache,
	}, nil
}

func (s *Service) assess(ctx context.Context, vesselName string) (*models.RiskAssessment, error) {
	loadCtx, loadSpan := s.tracer.Start(ctx, "fleetdata.load")
	scorer, err := s.provider.Scorer(loadCtx)
	loadSpan.End()
	if err != nil {
		return nil, err
	}

	_, scoreSpan := s.tracer.Start(ctx, "risk.score")
	assessment, err := scorer.Score(vesselName)
	scoreSpan.End()
	if err != nil {
		if stderrors.Is(err, scoring.ErrVesselNotFound) {
			return nil, errors.NewVesselNotFoundError(vesselName)
		}
		return nil, err
	}

	metrics.AssessmentsScored.WithLabelValues(string(assessment.RiskCategory)).Inc()

	s.logger.Info("vessel assessed", map[string]interface{}{
		"vesselName":   vesselName,
		"riskScore":    assessment.RiskScore,
		"riskCategory": assessment.RiskCategory,
	})

	return assessment, nil
}

func (s *Service) advise(ctx context.Context, assessment *models.RiskAssessment) (*models.VesselAdvisory, error) {
	scorer, err := s.provider.Scorer(ctx)
	if err != nil {
		return nil, err
	}

	advisor := advisory.NewAdvisor(scorer)
	result := advisor.Advise(assessment)
	return &result, nil
}

// cachedAssessment returns nil on a miss; cache failures degrade to a miss and
// never fail the job.
func (s *Service) cachedAssessment(ctx context.Context, key string) *models.RiskAssessment {
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if !stderrors.Is(err, redis.Nil) {
			s.logger.Warn("assessment cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		metrics.AssessmentCacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	var assessment models.RiskAssessment
	if err := json.Unmarshal([]byte(raw), &assessment); err != nil {
		s.logger.Warn("discarding unreadable cached assessment", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		metrics.AssessmentCacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	metrics.AssessmentCacheHits.WithLabelValues("hit").Inc()
	return &assessment
}

func (s *Service) storeAssessment(ctx context.Context, key string, assessment *models.RiskAssessment) {
	if s.cache == nil {
		return
	}

	doc, err := json.Marshal(assessment)
	if err != nil {
		s.logger.Warn("failed to marshal assessment for cache", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	if err := s.cache.Set(ctx, key, doc, s.config.CacheTTL).Err(); err != nil {
		s.logger.Warn("assessment cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *Service) archiveAssessment(ctx context.Context, assessment *models.RiskAssessment) {
	if s.esClient == nil || !s.config.ArchiveEnabled {
		return
	}

	doc, err := json.Marshal(assessment)
	if err != nil {
		s.logger.Warn("failed to marshal assessment for archive", map[string]interface{}{
			"vesselName": assessment.VesselName,
			"error":      err.Error(),
		})
		return
	}

	res, err := s.esClient.Index(
		s.config.AssessmentIndex,
		strings.NewReader(string(doc)),
		s.esClient.Index.WithContext(ctx),
	)
	if err != nil {
		s.logger.Warn("assessment archive write failed", map[string]interface{}{
			"vesselName": assessment.VesselName,
			"index":      s.config.AssessmentIndex,
			"error":      err.Error(),
		})
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logger.Warn("assessment archive write rejected", map[string]interface{}{
			"vesselName": assessment.VesselName,
			"index":      s.config.AssessmentIndex,
			"status":     res.Status(),
		})
		return
	}

	s.logger.Debug("assessment archived", map[string]interface{}{
		"vesselName": assessment.VesselName,
		"index":      s.config.AssessmentIndex,
	})
}
