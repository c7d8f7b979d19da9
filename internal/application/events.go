package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/huellitas-app/service-adoption/internal/platform/kafka"
)

// eventSource is the CloudEvents source attribute for everything this service publishes.
const eventSource = "service-adoption"

// EventPublisher sends domain events to the message broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// publishEvent logs and swallows failures; callers never fail because of the broker.
func publishEvent(ctx context.Context, publisher EventPublisher, logger *zap.Logger, topic, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := publisher.PublishEvent(ctx, topic, cloudEvent.WithSubject(key)); err != nil {
		logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
