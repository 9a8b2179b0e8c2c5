// internal/workers/data-access/query-vessel-data/queries/vessel.go
package queries

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

func VesselDetails(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	vesselName, ok := params["vesselName"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var name, vesselType, flagState, classificationSociety string
	var ageYears float64
	var builtYear, dwt int

	err := db.QueryRowContext(ctx, `
		SELECT vessel_name, age_years, built_year, vessel_type,
		       flag_state, classification_society, dwt
		FROM vessel_master
		WHERE vessel_name = $1`, vesselName).Scan(
		&name, &ageYears, &builtYear, &vesselType,
		&flagState, &classificationSociety, &dwt,
	)
	if err == sql.ErrNoRows {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrVesselNotFound, vesselName)
	}
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"vesselName":            name,
		"ageYears":              ageYears,
		"builtYear":             builtYear,
		"vesselType":            vesselType,
		"flagState":             flagState,
		"classificationSociety": classificationSociety,
		"dwt":                   dwt,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func VesselList(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	query := `
		SELECT vessel_name, vessel_type, flag_state, age_years, dwt
		FROM vessel_master
		ORDER BY vessel_name`
	args := []interface{}{}

	if limit, ok := params["limit"].(int); ok && limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var name, vesselType, flagState string
		var ageYears float64
		var dwt int
		err := rows.Scan(&name, &vesselType, &flagState, &ageYears, &dwt)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"vesselName": name,
			"vesselType": vesselType,
			"flagState":  flagState,
			"ageYears":   ageYears,
			"dwt":        dwt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func VesselsByType(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	vesselType, ok := params["vesselType"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT vessel_name, vessel_type, flag_state, classification_society, age_years, dwt
		FROM vessel_master
		WHERE vessel_type = $1
		ORDER BY vessel_name`, vesselType)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var name, vType, flagState, classificationSociety string
		var ageYears float64
		var dwt int
		err := rows.Scan(&name, &vType, &flagState, &classificationSociety, &ageYears, &dwt)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"vesselName":            name,
			"vesselType":            vType,
			"flagState":             flagState,
			"classificationSociety": classificationSociety,
			"ageYears":              ageYears,
			"dwt":                   dwt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func InspectionSummary(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	vesselName, ok := params["vesselName"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var name, performanceTrend string
	var inspectionCount int
	var avgDeficiencies, detentionRate, cleanRate float64

	err := db.QueryRowContext(ctx, `
		SELECT vessel_name, inspection_count, avg_deficiencies,
		       detention_rate, clean_rate, performance_trend
		FROM inspection_summaries
		WHERE vessel_name = $1`, vesselName).Scan(
		&name, &inspectionCount, &avgDeficiencies,
		&detentionRate, &cleanRate, &performanceTrend,
	)
	if err == sql.ErrNoRows {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrVesselNotFound, vesselName)
	}
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"vesselName":       name,
		"inspectionCount":  inspectionCount,
		"avgDeficiencies":  avgDeficiencies,
		"detentionRate":    detentionRate,
		"cleanRate":        cleanRate,
		"performanceTrend": performanceTrend,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func FleetStatistics(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	var totalVessels, vesselTypes int
	var averageAge, averageDWT float64

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(age_years), 0),
		       COUNT(DISTINCT vessel_type), COALESCE(AVG(dwt), 0)
		FROM vessel_master`).Scan(
		&totalVessels, &averageAge, &vesselTypes, &averageDWT,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	var totalInspections, totalDeficiencies int
	err = db.QueryRowContext(ctx, `
		SELECT total_inspections, total_deficiencies
		FROM fleet_counters
		LIMIT 1`).Scan(&totalInspections, &totalDeficiencies)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"totalVessels":      totalVessels,
		"averageAge":        averageAge,
		"vesselTypes":       vesselTypes,
		"averageDwt":        averageDWT,
		"totalInspections":  totalInspections,
		"totalDeficiencies": totalDeficiencies,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}
