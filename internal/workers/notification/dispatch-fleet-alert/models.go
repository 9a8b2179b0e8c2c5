// internal/workers/notification/dispatch-fleet-alert/models.go
package dispatchfleetalert

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/models"
)

// Input mirrors the variables the fleet report task leaves on the process:
// the report ID, the fleet overview and the recommendation list.
type Input struct {
	ReportID        string                       `json:"reportId"`
	FleetOverview   models.FleetOverview         `json:"fleetOverview"`
	Recommendations []models.FleetRecommendation `json:"recommendations"`
}

// Dispatch outcome per job. Status is "sent" when at least one channel
// delivered, "suppressed" when every candidate fell inside a dedup window,
// and "skipped" when nothing warranted an alert.
type Output struct {
	AlertID  string    `json:"alertId"`
	Channels []string  `json:"channels"`
	Status   string    `json:"status"`
	SentAt   time.Time `json:"sentAt"`
}

const (
	StatusSent       = "sent"
	StatusSuppressed = "suppressed"
	StatusSkipped    = "skipped"
)

// EmailSender is the slice of the SES API the dispatcher needs.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// TopicPublisher is the slice of the SNS API the dispatcher needs.
type TopicPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// Email and Topic may be nil; the service then disables that channel with a
// warning instead of failing the job.
type ServiceDependencies struct {
	Email  EmailSender
	Topic  TopicPublisher
	Logger logger.Logger
}
