// internal/fleetdata/loader.go
package fleetdata

import (
	"context"
	"database/sql"

	"vessel-risk-workers/internal/common/errors"
	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/models"
)

// Dataset is one consistent load of the fleet master data and inspection
// analytics. Slices keep the database ordering (vessel_name ascending).
type Dataset struct {
	Vessels     []models.VesselRecord
	Inspections []models.InspectionSummary
	Counters    models.FleetCounters
}

// Loader reads the vessel master and inspection summary collections from
// Postgres. Load failures wrap DATASET_LOAD_FAILED and are retryable.
type Loader struct {
	db     *sql.DB
	logger logger.Logger
}

func NewLoader(db *sql.DB, log logger.Logger) *Loader {
	return &Loader{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "fleetdata"}),
	}
}

func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	vessels, err := l.loadVessels(ctx)
	if err != nil {
		return nil, errors.NewDatasetLoadFailedError(err)
	}

	inspections, err := l.loadInspections(ctx)
	if err != nil {
		return nil, errors.NewDatasetLoadFailedError(err)
	}

	counters, err := l.loadCounters(ctx)
	if err != nil {
		return nil, errors.NewDatasetLoadFailedError(err)
	}

	l.logger.Info("fleet dataset loaded", map[string]interface{}{
		"vessels":           len(vessels),
		"inspectedVessels":  len(inspections),
		"totalInspections":  counters.TotalInspections,
		"totalDeficiencies": counters.TotalDeficiencies,
	})

	return &Dataset{
		Vessels:     vessels,
		Inspections: inspections,
		Counters:    counters,
	}, nil
}

func (l *Loader) loadVessels(ctx context.Context) ([]models.VesselRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT vessel_name, age_years, built_year, vessel_type,
		       flag_state, classification_society, dwt
		FROM vessel_master
		ORDER BY vessel_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vessels []models.VesselRecord
	for rows.Next() {
		var v models.VesselRecord
		if err := rows.Scan(
			&v.VesselName, &v.AgeYears, &v.BuiltYear, &v.VesselType,
			&v.FlagState, &v.ClassificationSociety, &v.DWT,
		); err != nil {
			return nil, err
		}
		vessels = append(vessels, v)
	}

	return vessels, rows.Err()
}

func (l *Loader) loadInspections(ctx context.Context) ([]models.InspectionSummary, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT vessel_name, inspection_count, avg_deficiencies,
		       detention_rate, clean_rate, performance_trend
		FROM inspection_summaries
		ORDER BY vessel_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.InspectionSummary
	for rows.Next() {
		var s models.InspectionSummary
		if err := rows.Scan(
			&s.VesselName, &s.InspectionCount, &s.AvgDeficiencies,
			&s.DetentionRate, &s.CleanRate, &s.PerformanceTrend,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// loadCounters reads the single-row fleet totals table. An empty table means
// zero counters, not an error.
func (l *Loader) loadCounters(ctx context.Context) (models.FleetCounters, error) {
	var c models.FleetCounters
	err := l.db.QueryRowContext(ctx, `
		SELECT total_inspections, total_deficiencies
		FROM fleet_counters
		LIMIT 1`).Scan(&c.TotalInspections, &c.TotalDeficiencies)
	if err == sql.ErrNoRows {
		return models.FleetCounters{}, nil
	}
	return c, err
}
