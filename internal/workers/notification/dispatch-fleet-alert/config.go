// internal/workers/notification/dispatch-fleet-alert/config.go
package dispatchfleetalert

import (
	"fmt"
	"time"

	"vessel-risk-workers/internal/common/validation"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`

	EmailEnabled bool     `mapstructure:"email_enabled"`
	FromEmail    string   `mapstructure:"from_email"`
	Recipients   []string `mapstructure:"recipients"`

	SMSEnabled bool   `mapstructure:"sms_enabled"`
	TopicARN   string `mapstructure:"topic_arn"`

	AWSRegion string `mapstructure:"aws_region"`

	// Dedup store connection. An empty address disables suppression.
	RedisAddress  string        `mapstructure:"redis_address"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	DedupTTL      time.Duration `mapstructure:"dedup_ttl"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 3,
		Timeout:       30 * time.Second,
		EmailEnabled:  true,
		SMSEnabled:    true,
		AWSRegion:     "ap-northeast-2",
		DedupTTL:      time.Hour,
	}
}

// Validate checks structural settings only. Missing recipients or a missing
// topic ARN are not errors here; the service disables that channel at
// dispatch time with a warning.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.DedupTTL <= 0 {
		return fmt.Errorf("dedup_ttl must be positive")
	}
	if (c.EmailEnabled || c.SMSEnabled) && c.AWSRegion == "" {
		return fmt.Errorf("aws_region is required when a dispatch channel is enabled")
	}
	if c.EmailEnabled && c.FromEmail != "" && !validation.ValidateEmail(c.FromEmail) {
		return fmt.Errorf("from_email %q is not a valid email address", c.FromEmail)
	}
	return nil
}
