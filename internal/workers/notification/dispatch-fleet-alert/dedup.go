// internal/workers/notification/dispatch-fleet-alert/dedup.go
package dispatchfleetalert

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vessel-risk-workers/internal/common/logger"
)

// Deduper suppresses repeat alerts for the same recommendation category and
// priority inside a rolling window, backed by Redis SET NX with a TTL.
// The client is owned by the deduper and is separate from the assessment
// cache connection.
type Deduper struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewDeduper(config *Config, log logger.Logger) *Deduper {
	var client *redis.Client
	if config.RedisAddress != "" {
		client = redis.NewClient(&redis.Options{
			Addr:     config.RedisAddress,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
	}

	return &Deduper{
		client: client,
		ttl:    config.DedupTTL,
		logger: log,
	}
}

func dedupKey(category, priority string) string {
	return fmt.Sprintf("alert:dedup:%s:%s", category, priority)
}

// ShouldSend claims the dedup window for the given category and priority.
// Returns true when the window was free or when the store is unreachable;
// an unreachable store degrades to sending, never to silence.
func (d *Deduper) ShouldSend(ctx context.Context, category, priority string) bool {
	if d.client == nil {
		return true
	}

	key := dedupKey(category, priority)
	free, err := d.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
	if err != nil {
		d.logger.Warn("Alert dedup store unavailable, sending without suppression", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return true
	}

	return free
}

// Release frees a window claimed by ShouldSend. Called when delivery fails
// so a retried job is not suppressed by its own failed attempt.
func (d *Deduper) Release(ctx context.Context, category, priority string) {
	if d.client == nil {
		return
	}

	key := dedupKey(category, priority)
	if err := d.client.Del(ctx, key).Err(); err != nil {
		d.logger.Warn("Failed to release alert dedup window", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
