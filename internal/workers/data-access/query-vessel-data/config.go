// internal/workers/data-access/query-vessel-data/config.go
package queryvesseldata

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
