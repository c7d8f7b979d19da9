package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/huellitas-app/service-adoption/internal/application"
	"github.com/huellitas-app/service-adoption/internal/platform/domain"
	"github.com/huellitas-app/service-adoption/internal/platform/kafka"
	"github.com/huellitas-app/service-adoption/internal/proto/events"
)

// FollowUpRecorder appends moderation decisions to a report trail.
type FollowUpRecorder interface {
	AddFollowUp(ctx context.Context, reportID uuid.UUID, req application.FollowUpRequest, updatedBy uuid.UUID) (*application.ReportDTO, error)
}

// ModerationEventConsumer applies moderation decisions to reports.
type ModerationEventConsumer struct {
	consumer *kafka.Consumer
	reports  FollowUpRecorder
	logger   *zap.Logger
}

// NewModerationEventConsumer creates a new ModerationEventConsumer.
func NewModerationEventConsumer(
	brokers []string,
	groupID string,
	reports FollowUpRecorder,
	logger *zap.Logger,
) *ModerationEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicModerationEvents, logger)
	return &ModerationEventConsumer{
		consumer: consumer,
		reports:  reports,
		logger:   logger,
	}
}

// Start begins consuming moderation events. This blocks until the context is cancelled.
func (c *ModerationEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *ModerationEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *ModerationEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from moderation topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.ModerationReportReviewed:
		return c.handleReportReviewed(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled moderation event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *ModerationEventConsumer) handleReportReviewed(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.ReportReviewedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse ReportReviewedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing report reviewed event",
		zap.String("report_id", evt.ReportID.String()),
		zap.String("status", evt.Status),
	)

	_, err := c.reports.AddFollowUp(ctx, evt.ReportID, application.FollowUpRequest{
		Status:  evt.Status,
		Comment: evt.Comment,
	}, evt.ModeratorID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) || domain.IsKind(err, domain.KindValidation) {
			c.logger.Warn("skipping moderation event",
				zap.String("report_id", evt.ReportID.String()),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to apply moderation decision",
			zap.String("report_id", evt.ReportID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("moderation decision applied",
		zap.String("report_id", evt.ReportID.String()),
	)
	return nil
}
