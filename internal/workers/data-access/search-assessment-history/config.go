// internal/workers/data-access/search-assessment-history/config.go
package searchassessmenthistory

import "time"

type Config struct {
	Timeout     time.Duration
	IndexName   string
	DefaultSize int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		IndexName:   "vessel-assessments",
		DefaultSize: 10,
	}
}
