// internal/workers/assessment/generate-risk-matrix/handler_test.go
package generateriskmatrix

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

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
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
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
	}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// expectDatasetLoad queues one fleet load with four vessels. IRON MAMMOTH is
// the only one heavy and risky enough to land in a cell with level > 15.
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

func createProvider(t *testing.T, db *sql.DB) *fleetdata.Provider {
	return fleetdata.NewProvider(fleetdata.NewLoader(db, createTestLogger(t)))
}

func createHandler(t *testing.T, provider *fleetdata.Provider) *Handler {
	handler, err := NewHandler(HandlerOptions{
		CustomConfig: createTestConfig(),
		Dependencies: ServiceDependencies{
			Provider: provider,
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
		ElementId:                "Activity_GenerateRiskMatrix",
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  3,
		Deadline:                 0,
		Variables:                string(variablesJSON),
	}

	return entities.Job{ActivatedJob: activatedJob}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_FullFleet(t *testing.T) {
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	handler := createHandler(t, createProvider(t, db))

	output, err := handler.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	require.NotNil(t, output)
	require.NotNil(t, output.Matrix)
	assert.Equal(t, 4, output.TotalVessels)

	// QUIET RIVER (44.0) and YOUNG SHIN (51.5) share the Moderate/Medium cell.
	assert.Equal(t, 2, output.Matrix.Matrix[2][2])
	assert.ElementsMatch(t, []string{"QUIET RIVER", "YOUNG SHIN"}, output.Matrix.VesselDistribution["2_2"])

	// HAE SHIN (15.3) sits bottom-left.
	assert.Equal(t, 1, output.Matrix.Matrix[4][0])
	assert.Equal(t, []string{"HAE SHIN"}, output.Matrix.VesselDistribution["4_0"])

	// IRON MAMMOTH (93.2, 150k DWT) escalates into the Catastrophic row.
	assert.Equal(t, 1, output.Matrix.Matrix[0][4])
	assert.Equal(t, []string{"IRON MAMMOTH"}, output.Matrix.VesselDistribution["0_4"])
	assert.Equal(t, 25, output.Matrix.RiskLevels[0][4])

	assert.Equal(t, []string{"IRON MAMMOTH"}, output.HighRiskVessels)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ExplicitVesselList(t *testing.T) {
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	handler := createHandler(t, createProvider(t, db))

	output, err := handler.Execute(context.Background(), &Input{
		Vessels: []string{"YOUNG SHIN", "NO SUCH VESSEL"},
	})

	require.NoError(t, err)
	// Unknown vessels are skipped, not zero-filled.
	assert.Equal(t, 1, output.TotalVessels)
	assert.Equal(t, 1, output.Matrix.Matrix[2][2])
	assert.Equal(t, []string{"YOUNG SHIN"}, output.Matrix.VesselDistribution["2_2"])
	assert.Empty(t, output.HighRiskVessels)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_EmptyVesselList(t *testing.T) {
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	handler := createHandler(t, createProvider(t, db))

	output, err := handler.Execute(context.Background(), &Input{Vessels: []string{}})

	require.NoError(t, err)
	assert.Equal(t, 0, output.TotalVessels)
	assert.Empty(t, output.HighRiskVessels)

	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			assert.Zero(t, output.Matrix.Matrix[i][j])
		}
	}
}

func TestHandler_Execute_DatasetLoadFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT vessel_name, age_years, built_year, vessel_type, flag_state, classification_society, dwt FROM vessel_master ORDER BY vessel_name`).
		WillReturnError(stderrors.New("connection refused"))

	handler := createHandler(t, createProvider(t, db))

	output, err := handler.Execute(context.Background(), &Input{})

	require.Error(t, err)
	assert.Nil(t, output)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeDatasetLoadFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	db, _ := setupMockDB(t)
	handler := createHandler(t, createProvider(t, db))

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		errCode   string
		check     func(t *testing.T, input *Input)
	}{
		{
			name:      "no vessels means whole fleet",
			variables: map[string]interface{}{},
			check: func(t *testing.T, input *Input) {
				assert.Nil(t, input.Vessels)
			},
		},
		{
			name:      "explicit vessel list",
			variables: map[string]interface{}{"vessels": []interface{}{"YOUNG SHIN", "HAE SHIN"}},
			check: func(t *testing.T, input *Input) {
				assert.Equal(t, []string{"YOUNG SHIN", "HAE SHIN"}, input.Vessels)
			},
		},
		{
			name:      "empty list stays empty, not nil",
			variables: map[string]interface{}{"vessels": []interface{}{}},
			check: func(t *testing.T, input *Input) {
				require.NotNil(t, input.Vessels)
				assert.Len(t, input.Vessels, 0)
			},
		},
		{
			name:      "vessels wrong type",
			variables: map[string]interface{}{"vessels": "YOUNG SHIN"},
			wantErr:   true,
			errCode:   "VALIDATION_ERROR",
		},
		{
			name:      "non-string vessel entry",
			variables: map[string]interface{}{"vessels": []interface{}{"YOUNG SHIN", 42.0}},
			wantErr:   true,
			errCode:   "VALIDATION_ERROR",
		},
		{
			name:      "empty vessel name entry",
			variables: map[string]interface{}{"vessels": []interface{}{""}},
			wantErr:   true,
			errCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := createMockJob(23456, tt.variables)

			input, err := handler.parseInput(job)

			if tt.wantErr {
				require.Error(t, err)
				stdErr, ok := err.(*errors.StandardError)
				require.True(t, ok, "error should be StandardError")
				assert.Equal(t, tt.errCode, string(stdErr.Code))
				return
			}

			require.NoError(t, err)
			tt.check(t, input)
		})
	}
}

func TestHandler_ParseInput_MalformedVariables(t *testing.T) {
	db, _ := setupMockDB(t)
	handler := createHandler(t, createProvider(t, db))

	job := entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       1,
		Type:      TaskType,
		Variables: "not even json",
	}}

	input, err := handler.parseInput(job)

	require.Error(t, err)
	assert.Nil(t, input)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, "PARSE_ERROR", string(stdErr.Code))
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
			name:    "negative max jobs active",
			mutate:  func(c *Config) { c.MaxJobsActive = -1 },
			wantErr: "max_jobs_active must be positive",
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

	t.Run("worker section is mapped", func(t *testing.T) {
		appConfig := &config.Config{
			Workers: map[string]config.WorkerConfig{
				TaskType: {Enabled: false, MaxJobsActive: 2, Timeout: 45000},
			},
		}

		cfg := createConfigFromAppConfig(appConfig, nil)

		assert.False(t, cfg.Enabled)
		assert.Equal(t, 2, cfg.MaxJobsActive)
		assert.Equal(t, 45*time.Second, cfg.Timeout)
	})

	t.Run("custom config takes precedence", func(t *testing.T) {
		custom := createTestConfig()
		cfg := createConfigFromAppConfig(&config.Config{}, custom)
		assert.Same(t, custom, cfg)
	})
}

func TestNewHandler_InvalidConfigRejected(t *testing.T) {
	invalid := createTestConfig()
	invalid.MaxJobsActive = 0

	handler, err := NewHandler(HandlerOptions{CustomConfig: invalid})

	require.Error(t, err)
	assert.Nil(t, handler)
	assert.Contains(t, err.Error(), "invalid configuration")
}

// ==========================
// Schema Tests
// ==========================

func TestGetInputSchema(t *testing.T) {
	schema := GetInputSchema()

	assert.Equal(t, "object", schema.Type)
	assert.Empty(t, schema.Required)
	require.Contains(t, schema.Properties, "vessels")
	assert.Equal(t, "array", schema.Properties["vessels"].Type)
	require.NotNil(t, schema.Properties["vessels"].Items)
	assert.Equal(t, "string", schema.Properties["vessels"].Items.Type)
}

func TestGetOutputSchema(t *testing.T) {
	schema := GetOutputSchema()

	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Properties, "riskMatrix")
	assert.Contains(t, schema.Properties, "totalVessels")
	assert.Contains(t, schema.Properties, "highRiskVessels")
	assert.Contains(t, schema.Required, "riskMatrix")
}

// ==========================
// Serialization Tests
// ==========================

func TestOutput_EmptyHighRiskListMarshalsAsArray(t *testing.T) {
	db, mock := setupMockDB(t)
	expectDatasetLoad(mock)

	handler := createHandler(t, createProvider(t, db))

	output, err := handler.Execute(context.Background(), &Input{Vessels: []string{"HAE SHIN"}})
	require.NoError(t, err)

	data, err := json.Marshal(output)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// BPMN expressions iterate this list, so null would break them.
	list, ok := decoded["highRiskVessels"].([]interface{})
	require.True(t, ok, "highRiskVessels must marshal as an array")
	assert.Len(t, list, 0)
}
