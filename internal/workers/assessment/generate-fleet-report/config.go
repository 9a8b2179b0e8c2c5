// internal/workers/assessment/generate-fleet-report/config.go
package generatefleetreport

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled        bool          `mapstructure:"enabled"`
	MaxJobsActive  int           `mapstructure:"max_jobs_active"`
	Timeout        time.Duration `mapstructure:"timeout"`
	TopRiskCount   int           `mapstructure:"top_risk_count"`
	ArchiveEnabled bool          `mapstructure:"archive_enabled"`
	ReportIndex    string        `mapstructure:"report_index"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		MaxJobsActive:  5,
		Timeout:        30 * time.Second,
		TopRiskCount:   5,
		ArchiveEnabled: true,
		ReportIndex:    "fleet-risk-reports",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.TopRiskCount <= 0 {
		return fmt.Errorf("top_risk_count must be positive")
	}
	if c.ArchiveEnabled && c.ReportIndex == "" {
		return fmt.Errorf("report_index is required when archiving is enabled")
	}
	return nil
}
