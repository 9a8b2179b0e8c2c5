// internal/workers/assessment/assess-vessel-risk/config.go
package assessvesselrisk

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxJobsActive   int           `mapstructure:"max_jobs_active"`
	Timeout         time.Duration `mapstructure:"timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	ArchiveEnabled  bool          `mapstructure:"archive_enabled"`
	AssessmentIndex string        `mapstructure:"assessment_index"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		MaxJobsActive:   5,
		Timeout:         30 * time.Second,
		CacheTTL:        10 * time.Minute,
		ArchiveEnabled:  true,
		AssessmentIndex: "vessel-assessments",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive")
	}
	if c.ArchiveEnabled && c.AssessmentIndex == "" {
		return fmt.Errorf("assessment_index is required when archiving is enabled")
	}
	return nil
}
