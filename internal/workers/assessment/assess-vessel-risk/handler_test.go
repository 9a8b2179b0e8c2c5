// internal/workers/assessment/assess-vessel-risk/handler_test.go
package assessvesselrisk

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"vessel-risk-workers/internal/common/config"
	"vessel-risk-workers/internal/common/errors"
	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/fleetdata"
	"vessel-risk-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func createTestConfig() *Config {
	return &Config{
		Enabled:         true,
		MaxJobsActive:   5,
		Timeout:         30 * time.Second,
		CacheTTL:        10 * time.Minute,
		ArchiveEnabled:  false,
		AssessmentIndex: "vessel-assessments",
	}
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return mr, redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// expectDatasetLoad queues one complete fleet dataset load. Any database
// access beyond what a test queues fails ExpectationsWereMet, which is how
// the cache tests prove Postgres was not touched.
func expectDatasetLoad(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT vessel_name, age_years, built_year, vessel_type, flag_state, classification_society, dwt FROM vessel_master ORDER BY vessel_name`).
		WillReturnRows(sqlmock.NewRows([]string{
			"vessel_name", "age_years", "built_year", "vessel_type",
			"flag_state", "classification_society", "dwt",
		}).
			AddRow("HAE SHIN", 10.0, 2016, "Container", "Korea", "KR", 85000).
			AddRow("QUIET RIVER", 25.0, 2001, "Tanker", "Panama", "BV", 52000).
			AddRow("YOUNG SHIN", 30.0, 1996, "Tanker", "Panama", "BV", 45000))

	mock.ExpectQuery(`SELECT vessel_name, inspection_count, avg_deficiencies, detention_rate, clean_rate, performance_trend FROM inspection_summaries ORDER BY vessel_name`).
		WillReturnRows(sqlmock.NewRows([]string{
			"vessel_name", "inspection_count", "avg_deficiencies",
			"detention_rate", "clean_rate", "performance_trend",
		}).
			AddRow("HAE SHIN", 8, 1.5, 0.0, 60.0, "Improving").
			AddRow("QUIET RIVER", 9, 5.0, 10.0, 20.0, "Stable").
			AddRow("YOUNG SHIN", 12, 5.0, 10.0, 20.0, "Stable"))

	mock.ExpectQuery(`SELECT total_inspections, total_deficiencies FROM fleet_counters LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"total_inspections", "total_deficiencies"}).
			AddRow(29, 104))
}

func createProvider(t *testing.T, db *sql.DB) *fleetdata.Provider {
	return fleetdata.NewProvider(fleetdata.NewLoader(db, createTestLogger(t)))
}

func createHandler(t *testing.T, provider *fleetdata.Provider, cache *redis.Client) *Handler {
	handler, err := NewHandler(HandlerOptions{
		CustomConfig: createTestConfig(),
		Dependencies: ServiceDependencies{
			Provider: provider,
			Cache:    cache,
			Logger:   createTestLogger(t),
		},
		Logger: createTestLogger(t),
	})
	require.NoError(t, err)
	return handler
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	activatedJob := &pb.ActivatedJob{
		Key:                      key,
		Type:                     TaskType,
		ProcessInstanceKey:       key * 10,
		BpmnProcessId:            "test-process",
		ProcessDefinitionVersion: 1,
		ProcessDefinitionKey:     1,
		ElementId:                "Activity_AssessVesselRisk",
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  3,
		Deadline:                 0,
		Variables:                string(variablesJSON),
	}

	return entities.Job{ActivatedJob: activatedJob}
}

func cacheAssessment(t *testing.T, rdb *redis.Client, assessment models.RiskAssessment) {
	payload, err := json.Marshal(assessment)
	require.NoError(t, err)
	require.NoError(t, rdb.Set(context.Background(), CacheKey(assessment.VesselName), payload, 10*time.Minute).Err())
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_FreshAssessment(t *testing.T) {
	_, rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	handler := createHandler(t, createProvider(t, db), rdb)

	output, err := handler.Execute(context.Background(), &Input{VesselName: "YOUNG SHIN"})

	require.NoError(t, err)
	require.NotNil(t, output)
	require.NotNil(t, output.Assessment)
	assert.False(t, output.FromCache)
	assert.Nil(t, output.Advisory)

	assert.Equal(t, "YOUNG SHIN", output.Assessment.VesselName)
	assert.Equal(t, 51.5, output.Assessment.RiskScore)
	assert.Equal(t, models.RiskCategoryHigh, output.Assessment.RiskCategory)
	assert.Equal(t, 30.0, output.Assessment.VesselInfo.AgeYears)

	// The fresh result must be written through to the cache.
	cached, err := rdb.Get(context.Background(), CacheKey("YOUNG SHIN")).Result()
	require.NoError(t, err)
	var stored models.RiskAssessment
	require.NoError(t, json.Unmarshal([]byte(cached), &stored))
	assert.Equal(t, 51.5, stored.RiskScore)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_CacheHitSkipsDatabase(t *testing.T) {
	_, rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	// No expectations queued: any query would fail the test.

	cacheAssessment(t, rdb, models.RiskAssessment{
		VesselName:   "YOUNG SHIN",
		RiskScore:    51.5,
		RiskCategory: models.RiskCategoryHigh,
		AssessedAt:   "2026-08-20T10:00:00Z",
	})

	handler := createHandler(t, createProvider(t, db), rdb)

	output, err := handler.Execute(context.Background(), &Input{VesselName: "YOUNG SHIN"})

	require.NoError(t, err)
	assert.True(t, output.FromCache)
	assert.Equal(t, 51.5, output.Assessment.RiskScore)
	assert.Equal(t, "2026-08-20T10:00:00Z", output.Assessment.AssessedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ForceRefreshBypassesCacheRead(t *testing.T) {
	_, rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	// Stale entry with a score the scorer would never produce for this fleet.
	cacheAssessment(t, rdb, models.RiskAssessment{
		VesselName:   "YOUNG SHIN",
		RiskScore:    99.9,
		RiskCategory: models.RiskCategoryCritical,
	})

	handler := createHandler(t, createProvider(t, db), rdb)

	output, err := handler.Execute(context.Background(), &Input{VesselName: "YOUNG SHIN", ForceRefresh: true})

	require.NoError(t, err)
	assert.False(t, output.FromCache)
	assert.Equal(t, 51.5, output.Assessment.RiskScore)

	// The stale entry is replaced by the recomputed one.
	cached, err := rdb.Get(context.Background(), CacheKey("YOUNG SHIN")).Result()
	require.NoError(t, err)
	var stored models.RiskAssessment
	require.NoError(t, json.Unmarshal([]byte(cached), &stored))
	assert.Equal(t, 51.5, stored.RiskScore)
	assert.Equal(t, models.RiskCategoryHigh, stored.RiskCategory)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_CorruptCacheEntryFallsBack(t *testing.T) {
	_, rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	require.NoError(t, rdb.Set(context.Background(), CacheKey("YOUNG SHIN"), "{not json", 10*time.Minute).Err())

	handler := createHandler(t, createProvider(t, db), rdb)

	output, err := handler.Execute(context.Background(), &Input{VesselName: "YOUNG SHIN"})

	require.NoError(t, err)
	assert.False(t, output.FromCache)
	assert.Equal(t, 51.5, output.Assessment.RiskScore)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_VesselNotFound(t *testing.T) {
	_, rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	handler := createHandler(t, createProvider(t, db), rdb)

	output, err := handler.Execute(context.Background(), &Input{VesselName: "GOLDEN HORIZON"})

	require.Error(t, err)
	assert.Nil(t, output)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeVesselNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, "GOLDEN HORIZON")
}

func TestHandler_Execute_DatasetLoadFailure(t *testing.T) {
	_, rdb := setupRedis(t)
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT vessel_name, age_years, built_year, vessel_type, flag_state, classification_society, dwt FROM vessel_master ORDER BY vessel_name`).
		WillReturnError(stderrors.New("connection refused"))

	handler := createHandler(t, createProvider(t, db), rdb)

	output, err := handler.Execute(context.Background(), &Input{VesselName: "YOUNG SHIN"})

	require.Error(t, err)
	assert.Nil(t, output)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeDatasetLoadFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

// ==========================
// Advisory Tests
// ==========================

func TestHandler_Execute_AdvisoryAttached(t *testing.T) {
	_, rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	handler := createHandler(t, createProvider(t, db), rdb)

	output, err := handler.Execute(context.Background(), &Input{VesselName: "YOUNG SHIN", IncludeAdvisory: true})

	require.NoError(t, err)
	require.NotNil(t, output.Advisory)
	assert.NotEmpty(t, output.Advisory.Recommendations)
	assert.NotEmpty(t, output.Advisory.RiskTrend.Trend)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_AdvisoryOnCacheHit(t *testing.T) {
	_, rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	// The advisory needs the scorer, so a cache hit still loads the dataset once.
	expectDatasetLoad(mock)

	cacheAssessment(t, rdb, models.RiskAssessment{
		VesselName:   "YOUNG SHIN",
		RiskScore:    51.5,
		RiskCategory: models.RiskCategoryHigh,
	})

	handler := createHandler(t, createProvider(t, db), rdb)

	output, err := handler.Execute(context.Background(), &Input{VesselName: "YOUNG SHIN", IncludeAdvisory: true})

	require.NoError(t, err)
	assert.True(t, output.FromCache)
	require.NotNil(t, output.Advisory)
	assert.NotEmpty(t, output.Advisory.Recommendations)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Cache Behavior Tests
// ==========================

func TestService_CacheWriteUsesConfiguredTTL(t *testing.T) {
	mr, rdb := setupRedis(t)
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	handler := createHandler(t, createProvider(t, db), rdb)

	_, err := handler.Execute(context.Background(), &Input{VesselName: "YOUNG SHIN"})
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, mr.TTL(CacheKey("YOUNG SHIN")))
}

func TestService_CacheOutageDegradesToFreshCompute(t *testing.T) {
	// miniredis cannot simulate command failures, so this one uses redismock.
	rdb, redisMock := redismock.NewClientMock()
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	redisMock.ExpectGet(CacheKey("YOUNG SHIN")).SetErr(stderrors.New("connection refused"))

	handler := createHandler(t, createProvider(t, db), rdb)

	output, err := handler.Execute(context.Background(), &Input{VesselName: "YOUNG SHIN"})

	// An unreachable cache is a miss, not a failure. The write-back failure
	// after scoring is swallowed the same way.
	require.NoError(t, err)
	assert.False(t, output.FromCache)
	assert.Equal(t, 51.5, output.Assessment.RiskScore)

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_NilCacheSkipsCaching(t *testing.T) {
	db, mock := setupMockDB(t)
	// One load only: the provider keeps the scorer in process even without Redis.
	expectDatasetLoad(mock)

	handler, err := NewHandler(HandlerOptions{
		CustomConfig: createTestConfig(),
		Dependencies: ServiceDependencies{
			Provider: createProvider(t, db),
			Logger:   createTestLogger(t),
		},
		Logger: createTestLogger(t),
	})
	require.NoError(t, err)

	first, err := handler.Execute(context.Background(), &Input{VesselName: "YOUNG SHIN"})
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := handler.Execute(context.Background(), &Input{VesselName: "YOUNG SHIN"})
	require.NoError(t, err)
	assert.False(t, second.FromCache)
	assert.Equal(t, first.Assessment.RiskScore, second.Assessment.RiskScore)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "vessel:assessment:YOUNG SHIN", CacheKey("YOUNG SHIN"))
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	_, rdb := setupRedis(t)
	db, _ := setupMockDB(t)
	handler := createHandler(t, createProvider(t, db), rdb)

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		errCode   string
		expected  *Input
	}{
		{
			name:      "minimal valid input",
			variables: map[string]interface{}{"vesselName": "YOUNG SHIN"},
			expected:  &Input{VesselName: "YOUNG SHIN"},
		},
		{
			name: "all fields set",
			variables: map[string]interface{}{
				"vesselName":      "HAE SHIN",
				"includeAdvisory": true,
				"forceRefresh":    true,
			},
			expected: &Input{VesselName: "HAE SHIN", IncludeAdvisory: true, ForceRefresh: true},
		},
		{
			name: "extra process variables are ignored",
			variables: map[string]interface{}{
				"vesselName": "QUIET RIVER",
				"processId":  "proc-123",
				"requestId":  "req-456",
			},
			expected: &Input{VesselName: "QUIET RIVER"},
		},
		{
			name:      "missing vessel name",
			variables: map[string]interface{}{"includeAdvisory": true},
			wantErr:   true,
			errCode:   "VALIDATION_ERROR",
		},
		{
			name:      "empty vessel name",
			variables: map[string]interface{}{"vesselName": ""},
			wantErr:   true,
			errCode:   "VALIDATION_ERROR",
		},
		{
			name:      "vessel name wrong type",
			variables: map[string]interface{}{"vesselName": 12345},
			wantErr:   true,
			errCode:   "VALIDATION_ERROR",
		},
		{
			name: "include advisory wrong type",
			variables: map[string]interface{}{
				"vesselName":      "YOUNG SHIN",
				"includeAdvisory": "yes",
			},
			wantErr: true,
			errCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := createMockJob(12345, tt.variables)

			input, err := handler.parseInput(job)

			if tt.wantErr {
				require.Error(t, err)
				stdErr, ok := err.(*errors.StandardError)
				require.True(t, ok, "error should be StandardError")
				assert.Equal(t, tt.errCode, string(stdErr.Code))
				assert.False(t, stdErr.Retryable)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, input)
		})
	}
}

func TestHandler_ParseInput_MalformedVariables(t *testing.T) {
	_, rdb := setupRedis(t)
	db, _ := setupMockDB(t)
	handler := createHandler(t, createProvider(t, db), rdb)

	job := entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       1,
		Type:      TaskType,
		Variables: "{invalid json",
	}}

	input, err := handler.parseInput(job)

	require.Error(t, err)
	assert.Nil(t, input)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, "PARSE_ERROR", string(stdErr.Code))
}

// ==========================
// Error Code Tests
// ==========================

func TestHandler_ExtractErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "standard error",
			err:      &errors.StandardError{Code: errors.ErrCodeVesselNotFound},
			expected: "VESSEL_NOT_FOUND",
		},
		{
			name:     "plain error",
			err:      stderrors.New("something broke"),
			expected: "UNKNOWN_ERROR",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "UNKNOWN_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractErrorCode(tt.err))
		})
	}
}

// ==========================
// Configuration Tests
// ==========================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default config is valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: "timeout must be positive",
		},
		{
			name:    "zero max jobs active",
			mutate:  func(c *Config) { c.MaxJobsActive = 0 },
			wantErr: "max_jobs_active must be positive",
		},
		{
			name:    "zero cache ttl",
			mutate:  func(c *Config) { c.CacheTTL = 0 },
			wantErr: "cache_ttl must be positive",
		},
		{
			name: "archiving without index",
			mutate: func(c *Config) {
				c.ArchiveEnabled = true
				c.AssessmentIndex = ""
			},
			wantErr: "assessment_index is required",
		},
		{
			name: "no index needed when archiving disabled",
			mutate: func(c *Config) {
				c.ArchiveEnabled = false
				c.AssessmentIndex = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5, cfg.MaxJobsActive)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.ArchiveEnabled)
	assert.Equal(t, "vessel-assessments", cfg.AssessmentIndex)
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	t.Run("nil app config returns defaults", func(t *testing.T) {
		cfg := createConfigFromAppConfig(nil, nil)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("custom config takes precedence", func(t *testing.T) {
		custom := &Config{Timeout: 5 * time.Second}
		appConfig := &config.Config{
			Workers: map[string]config.WorkerConfig{
				TaskType: {Enabled: true, MaxJobsActive: 99, Timeout: 99000},
			},
		}

		cfg := createConfigFromAppConfig(appConfig, custom)
		assert.Same(t, custom, cfg)
	})

	t.Run("app config sections are mapped", func(t *testing.T) {
		appConfig := &config.Config{
			Workers: map[string]config.WorkerConfig{
				TaskType: {Enabled: false, MaxJobsActive: 10, Timeout: 60000},
			},
			Assessment: config.AssessmentConfig{
				CacheTTL:        300000,
				ArchiveEnabled:  true,
				AssessmentIndex: "custom-assessments",
			},
		}

		cfg := createConfigFromAppConfig(appConfig, nil)

		assert.False(t, cfg.Enabled)
		assert.Equal(t, 10, cfg.MaxJobsActive)
		assert.Equal(t, 60*time.Second, cfg.Timeout)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
		assert.True(t, cfg.ArchiveEnabled)
		assert.Equal(t, "custom-assessments", cfg.AssessmentIndex)
	})

	t.Run("unknown worker keeps defaults", func(t *testing.T) {
		appConfig := &config.Config{
			Workers: map[string]config.WorkerConfig{
				"some-other-worker": {Enabled: false},
			},
		}

		cfg := createConfigFromAppConfig(appConfig, nil)

		assert.True(t, cfg.Enabled)
		assert.Equal(t, 5, cfg.MaxJobsActive)
	})
}

func TestNewHandler(t *testing.T) {
	t.Run("valid options", func(t *testing.T) {
		db, _ := setupMockDB(t)
		_, rdb := setupRedis(t)

		handler, err := NewHandler(HandlerOptions{
			CustomConfig: createTestConfig(),
			Dependencies: ServiceDependencies{
				Provider: createProvider(t, db),
				Cache:    rdb,
				Logger:   createTestLogger(t),
			},
			Logger: createTestLogger(t),
		})

		require.NoError(t, err)
		require.NotNil(t, handler)
		assert.Equal(t, TaskType, handler.GetTaskType())
		assert.True(t, handler.IsEnabled())
		assert.Equal(t, createTestConfig(), handler.GetConfig())
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		invalid := createTestConfig()
		invalid.Timeout = 0

		handler, err := NewHandler(HandlerOptions{CustomConfig: invalid})

		require.Error(t, err)
		assert.Nil(t, handler)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

// ==========================
// Schema Tests
// ==========================

func TestGetInputSchema(t *testing.T) {
	schema := GetInputSchema()

	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Required, "vesselName")
	assert.Contains(t, schema.Properties, "vesselName")
	assert.Contains(t, schema.Properties, "includeAdvisory")
	assert.Contains(t, schema.Properties, "forceRefresh")
	assert.Equal(t, "boolean", schema.Properties["includeAdvisory"].Type)
}

func TestGetOutputSchema(t *testing.T) {
	schema := GetOutputSchema()

	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Properties, "riskAssessment")
	assert.Contains(t, schema.Properties, "riskScore")
	assert.Contains(t, schema.Properties, "riskCategory")
	assert.Contains(t, schema.Properties, "fromCache")
	assert.Equal(t, []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}, schema.Properties["riskCategory"].Enum)
}

// ==========================
// Serialization Tests
// ==========================

func TestOutput_WorkflowVariables(t *testing.T) {
	output := &Output{
		Assessment: &models.RiskAssessment{
			VesselName:   "YOUNG SHIN",
			RiskScore:    51.5,
			RiskCategory: models.RiskCategoryHigh,
		},
		FromCache: true,
	}

	data, err := json.Marshal(output)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "riskAssessment")
	assert.Equal(t, true, decoded["fromCache"])
	// Advisory is omitted when not requested.
	assert.NotContains(t, decoded, "advisory")
}
