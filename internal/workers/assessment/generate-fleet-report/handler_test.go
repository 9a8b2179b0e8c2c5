// internal/workers/assessment/generate-fleet-report/handler_test.go
package generatefleetreport

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
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
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
		Enabled:        true,
		MaxJobsActive:  5,
		Timeout:        30 * time.Second,
		TopRiskCount:   5,
		ArchiveEnabled: false,
		ReportIndex:    "fleet-risk-reports",
	}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectDatasetLoad(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT vessel_name, age_years, built_year, vessel_type, flag_state, classification_society, dwt FROM vessel_master ORDER BY vessel_name`).
		WillReturnRows(sqlmock.NewRows([]string{
			"vessel_name", "age_years", "built_year", "vessel_type",
			"flag_state", "classification_society", "dwt",
		}).
			AddRow("HAE SHIN", 10.0, 2016, "Container", "Korea", "KR", 85000).
			AddRow("IRON MAMMOTH", 40.0, 1986, "Tanker", "Panama", "BV", 150000).
			AddRow("QUIET RIVER", 25.0, 2001, "Tanker", "Panama", "BV", 52000).
			AddRow("YOUNG SHIN", 30.0, 1996, "Tanker", "Panama", "BV", 45000))

	mock.ExpectQuery(`SELECT vessel_name, inspection_count, avg_deficiencies, detention_rate, clean_rate, performance_trend FROM inspection_summaries ORDER BY vessel_name`).
		WillReturnRows(sqlmock.NewRows([]string{
			"vessel_name", "inspection_count", "avg_deficiencies",
			"detention_rate", "clean_rate", "performance_trend",
		}).
			AddRow("HAE SHIN", 8, 1.5, 0.0, 60.0, "Improving").
			AddRow("IRON MAMMOTH", 14, 9.0, 30.0, 0.0, "Critical").
			AddRow("QUIET RIVER", 9, 5.0, 10.0, 20.0, "Stable").
			AddRow("YOUNG SHIN", 12, 5.0, 10.0, 20.0, "Stable"))

	mock.ExpectQuery(`SELECT total_inspections, total_deficiencies FROM fleet_counters LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"total_inspections", "total_deficiencies"}).
			AddRow(43, 230))
}

func createHandler(t *testing.T, db *sql.DB, esClient *elasticsearch.Client, cfg *Config) *Handler {
	handler, err := NewHandler(HandlerOptions{
		CustomConfig: cfg,
		Dependencies: ServiceDependencies{
			Provider: fleetdata.NewProvider(fleetdata.NewLoader(db, createTestLogger(t))),
			ES:       esClient,
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
		ElementId:                "Activity_GenerateFleetReport",
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  3,
		Deadline:                 0,
		Variables:                string(variablesJSON),
	}

	return entities.Job{ActivatedJob: activatedJob}
}

func createRealElasticsearchClient(t *testing.T) *elasticsearch.Client {
	cfg := elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
	}

	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		t.Skipf("Skipping test: Failed to create Elasticsearch client: %v", err)
		return nil
	}

	res, err := esClient.Info()
	if err != nil {
		t.Skipf("Skipping test: Elasticsearch container not responding: %v", err)
		return nil
	}
	defer res.Body.Close()

	if res.IsError() {
		t.Skipf("Skipping test: Elasticsearch error: %s", res.String())
		return nil
	}

	t.Log("✅ Connected to REAL Elasticsearch container")
	return esClient
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_FullReport(t *testing.T) {
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	handler := createHandler(t, db, nil, createTestConfig())

	output, err := handler.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	require.NotNil(t, output)
	require.NotNil(t, output.Report)

	_, parseErr := uuid.Parse(output.ReportID)
	assert.NoError(t, parseErr, "report ID must be a UUID")
	assert.Equal(t, output.ReportID, output.Report.ReportID)
	assert.Equal(t, "Maritime Fleet Risk Assessment Report", output.Report.ReportTitle)

	overview := output.FleetOverview
	assert.Equal(t, 4, overview.TotalVessels)
	assert.InDelta(t, 51.0, overview.AverageRiskScore, 1e-9)
	assert.Equal(t, 1, overview.RiskDistribution[models.RiskCategoryLow])
	assert.Equal(t, 1, overview.RiskDistribution[models.RiskCategoryMedium])
	assert.Equal(t, 1, overview.RiskDistribution[models.RiskCategoryHigh])
	assert.Equal(t, 1, overview.RiskDistribution[models.RiskCategoryCritical])
	assert.Equal(t, 2, overview.HighRiskVessels)
	assert.Equal(t, 1, overview.CriticalRiskVessels)

	require.Len(t, output.Report.TopRiskVessels, 4)
	top := output.Report.TopRiskVessels
	assert.Equal(t, "IRON MAMMOTH", top[0].VesselName)
	assert.InDelta(t, 93.2, top[0].RiskScore, 1e-9)
	assert.Equal(t, models.RiskCategoryCritical, top[0].RiskCategory)
	assert.Equal(t, "ageFactor", top[0].PrimaryRiskFactor)
	assert.Equal(t, "YOUNG SHIN", top[1].VesselName)
	assert.Equal(t, "mouFactor", top[1].PrimaryRiskFactor)
	assert.Equal(t, "QUIET RIVER", top[2].VesselName)
	assert.Equal(t, "HAE SHIN", top[3].VesselName)

	matrixSummary := output.Report.RiskMatrixSummary
	assert.Equal(t, 4, matrixSummary.TotalVesselsInMatrix)
	assert.Equal(t, 4, matrixSummary.HighRiskCells)
	assert.Equal(t, 1, matrixSummary.VesselsInHighRisk)

	// One critical vessel and one bad inspection history: emergency response
	// plus training, but no modernization at exactly half the fleet old.
	require.Len(t, output.Recommendations, 2)
	assert.Equal(t, "CRITICAL", output.Recommendations[0].Priority)
	assert.Equal(t, "Emergency Fleet Management", output.Recommendations[0].Category)
	assert.Contains(t, output.Recommendations[0].Action, "1 critical risk vessels")
	assert.Equal(t, "HIGH", output.Recommendations[1].Priority)
	assert.Equal(t, "Operational Excellence", output.Recommendations[1].Category)

	// VesselDetails keeps the name order, not the ranking order.
	require.Len(t, output.Report.VesselDetails, 4)
	assert.Equal(t, "HAE SHIN", output.Report.VesselDetails[0].VesselName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_TopRiskCountLimitsRanking(t *testing.T) {
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	handler := createHandler(t, db, nil, createTestConfig())

	output, err := handler.Execute(context.Background(), &Input{TopRiskCount: 2})

	require.NoError(t, err)
	require.Len(t, output.Report.TopRiskVessels, 2)
	assert.Equal(t, "IRON MAMMOTH", output.Report.TopRiskVessels[0].VesselName)
	assert.Equal(t, "YOUNG SHIN", output.Report.TopRiskVessels[1].VesselName)

	// The ranking depth caps the list, not the report scope.
	assert.Equal(t, 4, output.FleetOverview.TotalVessels)
	assert.Len(t, output.Report.VesselDetails, 4)
}

func TestHandler_Execute_ConfiguredDefaultDepth(t *testing.T) {
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	cfg := createTestConfig()
	cfg.TopRiskCount = 3

	handler := createHandler(t, db, nil, cfg)

	output, err := handler.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Len(t, output.Report.TopRiskVessels, 3)
}

func TestHandler_Execute_DatasetLoadFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT vessel_name, age_years, built_year, vessel_type, flag_state, classification_society, dwt FROM vessel_master ORDER BY vessel_name`).
		WillReturnError(stderrors.New("connection refused"))

	handler := createHandler(t, db, nil, createTestConfig())

	output, err := handler.Execute(context.Background(), &Input{})

	require.Error(t, err)
	assert.Nil(t, output)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeDatasetLoadFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

// ==========================
// Archive Tests (require real Elasticsearch)
// ==========================

func TestHandler_Execute_ArchivesReport_RealElasticsearch(t *testing.T) {
	esClient := createRealElasticsearchClient(t)

	indexName := "fleet-risk-reports-test"
	esClient.Indices.Delete(
		[]string{indexName},
		esClient.Indices.Delete.WithIgnoreUnavailable(true),
	)

	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	cfg := createTestConfig()
	cfg.ArchiveEnabled = true
	cfg.ReportIndex = indexName

	handler := createHandler(t, db, esClient, cfg)

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	// Document GET is realtime, no refresh needed.
	res, err := esClient.Get(indexName, output.ReportID)
	require.NoError(t, err)
	defer res.Body.Close()
	require.False(t, res.IsError(), "archived report should be retrievable by ID: %s", res.String())

	var doc struct {
		Found  bool               `json:"found"`
		Source models.FleetReport `json:"_source"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&doc))
	assert.True(t, doc.Found)
	assert.Equal(t, output.ReportID, doc.Source.ReportID)
	assert.Equal(t, 4, doc.Source.FleetOverview.TotalVessels)

	t.Logf("✅ Fleet report %s archived and retrieved", output.ReportID)
}

func TestHandler_Execute_ArchiveDisabledSkipsElasticsearch(t *testing.T) {
	esClient := createRealElasticsearchClient(t)

	indexName := "fleet-risk-reports-disabled-test"
	esClient.Indices.Delete(
		[]string{indexName},
		esClient.Indices.Delete.WithIgnoreUnavailable(true),
	)

	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	cfg := createTestConfig()
	cfg.ArchiveEnabled = false
	cfg.ReportIndex = indexName

	handler := createHandler(t, db, esClient, cfg)

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	res, err := esClient.Get(indexName, output.ReportID)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.True(t, res.IsError(), "no document should be written with archiving disabled")
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	db, _ := setupMockDB(t)
	handler := createHandler(t, db, nil, createTestConfig())

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		errCode   string
		expected  *Input
	}{
		{
			name:      "empty input",
			variables: map[string]interface{}{},
			expected:  &Input{},
		},
		{
			name:      "explicit depth",
			variables: map[string]interface{}{"topRiskCount": 10.0},
			expected:  &Input{TopRiskCount: 10},
		},
		{
			name:      "extra process variables are ignored",
			variables: map[string]interface{}{"reportRequestId": "rr-1"},
			expected:  &Input{},
		},
		{
			name:      "zero depth rejected",
			variables: map[string]interface{}{"topRiskCount": 0.0},
			wantErr:   true,
			errCode:   "VALIDATION_ERROR",
		},
		{
			name:      "depth above bound",
			variables: map[string]interface{}{"topRiskCount": 100.0},
			wantErr:   true,
			errCode:   "VALIDATION_ERROR",
		},
		{
			name:      "depth wrong type",
			variables: map[string]interface{}{"topRiskCount": "five"},
			wantErr:   true,
			errCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := createMockJob(45678, tt.variables)

			input, err := handler.parseInput(job)

			if tt.wantErr {
				require.Error(t, err)
				stdErr, ok := err.(*errors.StandardError)
				require.True(t, ok, "error should be StandardError")
				assert.Equal(t, tt.errCode, string(stdErr.Code))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, input)
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
			name:    "zero top risk count",
			mutate:  func(c *Config) { c.TopRiskCount = 0 },
			wantErr: "top_risk_count must be positive",
		},
		{
			name: "archiving without index",
			mutate: func(c *Config) {
				c.ArchiveEnabled = true
				c.ReportIndex = ""
			},
			wantErr: "report_index is required",
		},
		{
			name: "no index needed when archiving disabled",
			mutate: func(c *Config) {
				c.ArchiveEnabled = false
				c.ReportIndex = ""
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

func TestCreateConfigFromAppConfig(t *testing.T) {
	t.Run("nil app config returns defaults", func(t *testing.T) {
		cfg := createConfigFromAppConfig(nil, nil)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("assessment section is mapped", func(t *testing.T) {
		appConfig := &config.Config{
			Workers: map[string]config.WorkerConfig{
				TaskType: {Enabled: true, MaxJobsActive: 3, Timeout: 45000},
			},
			Assessment: config.AssessmentConfig{
				TopRiskCount:   10,
				ArchiveEnabled: true,
				ReportIndex:    "custom-reports",
			},
		}

		cfg := createConfigFromAppConfig(appConfig, nil)

		assert.Equal(t, 3, cfg.MaxJobsActive)
		assert.Equal(t, 45*time.Second, cfg.Timeout)
		assert.Equal(t, 10, cfg.TopRiskCount)
		assert.True(t, cfg.ArchiveEnabled)
		assert.Equal(t, "custom-reports", cfg.ReportIndex)
	})
}

// ==========================
// Schema Tests
// ==========================

func TestGetInputSchema(t *testing.T) {
	schema := GetInputSchema()

	assert.Equal(t, "object", schema.Type)
	assert.Empty(t, schema.Required)
	require.Contains(t, schema.Properties, "topRiskCount")
	require.NotNil(t, schema.Properties["topRiskCount"].Minimum)
	assert.InDelta(t, 1.0, *schema.Properties["topRiskCount"].Minimum, 1e-9)
}

func TestGetOutputSchema(t *testing.T) {
	schema := GetOutputSchema()

	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Properties, "fleetReport")
	assert.Contains(t, schema.Properties, "reportId")
	assert.Contains(t, schema.Properties, "fleetOverview")
	assert.Contains(t, schema.Properties, "recommendations")
}
