// internal/risk/matrix/builder.go
package matrix

import (
	"fmt"
	"time"

	"vessel-risk-workers/internal/models"
	"vessel-risk-workers/internal/risk/scoring"
)

// HighRiskLevel is the exclusive threshold above which a cell counts as
// high-risk by convention.
const HighRiskLevel = 15

var (
	probabilityLabels = []string{"Very Low", "Low", "Medium", "High", "Very High"}
	severityLabels    = []string{"Insignificant", "Minor", "Moderate", "Major", "Catastrophic"}
)

// RiskLevels returns the fixed 25-cell weight grid: level(i,j) = (5-i)*(j+1)
// with row 0 the most severe. Independent of any vessel data.
func RiskLevels() [models.MatrixSize][models.MatrixSize]int {
	var levels [models.MatrixSize][models.MatrixSize]int
	for i := 0; i < models.MatrixSize; i++ {
		for j := 0; j < models.MatrixSize; j++ {
			levels[i][j] = (5 - i) * (j + 1)
		}
	}
	return levels
}

// Build scores the given vessels and buckets them into the grid. A nil vessel
// list means every vessel with inspection data. Vessels missing from master
// data are skipped, so the cell counts always sum to the number of successfully
// scored vessels, never zero-filled.
func Build(scorer *scoring.Scorer, vessels []string) *models.RiskMatrix {
	if vessels == nil {
		vessels = scorer.InspectedVessels()
	}

	assessments := make([]models.RiskAssessment, 0, len(vessels))
	for _, name := range vessels {
		assessment, err := scorer.Score(name)
		if err != nil {
			continue
		}
		assessments = append(assessments, *assessment)
	}
	return FromAssessments(assessments)
}

// FromAssessments buckets already-scored vessels into the grid.
func FromAssessments(assessments []models.RiskAssessment) *models.RiskMatrix {
	m := &models.RiskMatrix{
		RiskLevels:         RiskLevels(),
		ProbabilityLevels:  append([]string(nil), probabilityLabels...),
		SeverityLevels:     append([]string(nil), severityLabels...),
		VesselDistribution: make(map[string][]string, models.MatrixSize*models.MatrixSize),
		TotalVessels:       len(assessments),
		GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
	}

	for i := 0; i < models.MatrixSize; i++ {
		for j := 0; j < models.MatrixSize; j++ {
			m.VesselDistribution[cellKey(i, j)] = make([]string, 0)
		}
	}

	for _, assessment := range assessments {
		probIndex := probabilityIndex(assessment.RiskScore)
		sevIndex := severityIndex(assessment.VesselInfo.DWT, assessment.RiskScore)

		// Row 0 renders as the Catastrophic row, so severity flips.
		row := (models.MatrixSize - 1) - sevIndex
		m.Matrix[row][probIndex]++
		key := cellKey(row, probIndex)
		m.VesselDistribution[key] = append(m.VesselDistribution[key], assessment.VesselName)
	}

	return m
}

// IsHighRisk reports whether a cell's fixed level exceeds the high-risk
// threshold.
func IsHighRisk(level int) bool {
	return level > HighRiskLevel
}

func probabilityIndex(score float64) int {
	index := int(score / 20)
	if index > models.MatrixSize-1 {
		index = models.MatrixSize - 1
	}
	return index
}

// severityIndex starts from the score band and shifts by tonnage: large
// vessels (>100k DWT) escalate one step, small ones (<20k DWT) de-escalate.
func severityIndex(dwt int, score float64) int {
	base := int(score / 20)
	if base > models.MatrixSize-1 {
		base = models.MatrixSize - 1
	}
	if dwt > 100000 {
		base++
		if base > models.MatrixSize-1 {
			base = models.MatrixSize - 1
		}
	} else if dwt < 20000 {
		base--
		if base < 0 {
			base = 0
		}
	}
	return base
}

func cellKey(row, col int) string {
	return fmt.Sprintf("%d_%d", row, col)
}
