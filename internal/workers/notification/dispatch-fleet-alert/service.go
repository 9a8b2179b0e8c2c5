// internal/workers/notification/dispatch-fleet-alert/service.go
package dispatchfleetalert

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vessel-risk-workers/internal/common/errors"
	"vessel-risk-workers/internal/common/logger"
	"vessel-risk-workers/internal/common/metrics"
	"vessel-risk-workers/internal/models"
)

type Service struct {
	config  *Config
	logger  logger.Logger
	email   EmailSender
	topic   TopicPublisher
	deduper *Deduper
	tracer  trace.Tracer
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:  config,
		logger:  deps.Logger,
		email:   deps.Email,
		topic:   deps.Topic,
		deduper: NewDeduper(config, deps.Logger),
		tracer:  otel.Tracer(TaskType),
	}
}

// channelsFor maps a recommendation priority to its dispatch channels.
// CRITICAL goes to email and SMS, HIGH to email only, anything lower is not
// alert-worthy.
func channelsFor(priority string) (email, sms bool) {
	switch priority {
	case "CRITICAL":
		return true, true
	case "HIGH":
		return true, false
	default:
		return false, false
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, span := s.tracer.Start(ctx, "alert.dispatch")
	defer span.End()

	alertID := uuid.New().String()
	sentAt := time.Now().UTC()

	span.SetAttributes(
		attribute.String("alert.id", alertID),
		attribute.String("alert.report_id", input.ReportID),
		attribute.Int("alert.recommendations", len(input.Recommendations)),
	)

	s.logger.Info("Dispatching fleet alerts", map[string]interface{}{
		"alertId":         alertID,
		"reportId":        input.ReportID,
		"recommendations": len(input.Recommendations),
	})

	emailOK, emailReason := s.emailReady()
	smsOK, smsReason := s.smsReady()

	var delivered, suppressed int
	var emailUsed, smsUsed bool

	for _, rec := range input.Recommendations {
		wantEmail, wantSMS := channelsFor(rec.Priority)
		if !wantEmail && !wantSMS {
			continue
		}

		if wantEmail && !emailOK {
			s.logger.Warn("Email channel unavailable, skipping email alert", map[string]interface{}{
				"alertId":  alertID,
				"category": rec.Category,
				"reason":   emailReason,
			})
			wantEmail = false
		}
		if wantSMS && !smsOK {
			s.logger.Warn("SMS channel unavailable, skipping SMS alert", map[string]interface{}{
				"alertId":  alertID,
				"category": rec.Category,
				"reason":   smsReason,
			})
			wantSMS = false
		}
		if !wantEmail && !wantSMS {
			continue
		}

		if !s.deduper.ShouldSend(ctx, rec.Category, rec.Priority) {
			suppressed++
			if wantEmail {
				metrics.AlertsDispatched.WithLabelValues("email", StatusSuppressed).Inc()
			}
			if wantSMS {
				metrics.AlertsDispatched.WithLabelValues("sms", StatusSuppressed).Inc()
			}
			s.logger.Info("Alert suppressed inside dedup window", map[string]interface{}{
				"alertId":  alertID,
				"category": rec.Category,
				"priority": rec.Priority,
			})
			continue
		}

		data := templateData(alertID, input, rec, sentAt)

		// Delivery is at least once: a failure releases the dedup window so
		// the retried job is not suppressed by its own failed attempt.
		if wantEmail {
			if err := s.sendEmail(ctx, data); err != nil {
				s.deduper.Release(ctx, rec.Category, rec.Priority)
				return nil, err
			}
			emailUsed = true
		}
		if wantSMS {
			if err := s.publishSMS(ctx, data); err != nil {
				s.deduper.Release(ctx, rec.Category, rec.Priority)
				return nil, err
			}
			smsUsed = true
		}
		delivered++
	}

	channels := []string{}
	if emailUsed {
		channels = append(channels, "email")
	}
	if smsUsed {
		channels = append(channels, "sms")
	}

	status := StatusSkipped
	switch {
	case delivered > 0:
		status = StatusSent
	case suppressed > 0:
		status = StatusSuppressed
	}

	span.SetAttributes(
		attribute.String("alert.status", status),
		attribute.Int("alert.delivered", delivered),
		attribute.Int("alert.suppressed", suppressed),
	)

	s.logger.Info("Fleet alert dispatch finished", map[string]interface{}{
		"alertId":    alertID,
		"status":     status,
		"channels":   channels,
		"delivered":  delivered,
		"suppressed": suppressed,
	})

	return &Output{
		AlertID:  alertID,
		Channels: channels,
		Status:   status,
		SentAt:   sentAt,
	}, nil
}

func (s *Service) emailReady() (bool, string) {
	switch {
	case !s.config.EmailEnabled:
		return false, "channel disabled"
	case s.email == nil:
		return false, "no SES client"
	case s.config.FromEmail == "":
		return false, "no sender address"
	case len(s.config.Recipients) == 0:
		return false, "no recipients"
	}
	return true, ""
}

func (s *Service) smsReady() (bool, string) {
	switch {
	case !s.config.SMSEnabled:
		return false, "channel disabled"
	case s.topic == nil:
		return false, "no SNS client"
	case s.config.TopicARN == "":
		return false, "no topic ARN"
	}
	return true, ""
}

func templateData(alertID string, input *Input, rec models.FleetRecommendation, sentAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		"alertId":             alertID,
		"reportId":            input.ReportID,
		"priority":            rec.Priority,
		"category":            rec.Category,
		"action":              rec.Action,
		"impact":              rec.Impact,
		"timeframe":           rec.Timeframe,
		"totalVessels":        input.FleetOverview.TotalVessels,
		"averageRiskScore":    input.FleetOverview.AverageRiskScore,
		"highRiskVessels":     input.FleetOverview.HighRiskVessels,
		"criticalRiskVessels": input.FleetOverview.CriticalRiskVessels,
		"sentAt":              sentAt.Format(time.RFC3339),
	}
}

func (s *Service) sendEmail(ctx context.Context, data map[string]interface{}) error {
	subject, htmlBody, textBody, err := renderEmail(data)
	if err != nil {
		return err
	}

	_, err = s.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.config.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: s.config.Recipients,
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &sestypes.Body{
				Html: &sestypes.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
				Text: &sestypes.Content{Data: aws.String(textBody), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		metrics.AlertsDispatched.WithLabelValues("email", "failed").Inc()
		return errors.NewAlertDispatchFailedError("email", err)
	}

	metrics.AlertsDispatched.WithLabelValues("email", StatusSent).Inc()
	return nil
}

func (s *Service) publishSMS(ctx context.Context, data map[string]interface{}) error {
	message, err := renderSMS(data)
	if err != nil {
		return err
	}

	_, err = s.topic.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.config.TopicARN),
		Subject:  aws.String("Fleet Risk Alert"),
		Message:  aws.String(message),
	})
	if err != nil {
		metrics.AlertsDispatched.WithLabelValues("sms", "failed").Inc()
		return errors.NewAlertDispatchFailedError("sms", err)
	}

	metrics.AlertsDispatched.WithLabelValues("sms", StatusSent).Inc()
	return nil
}
