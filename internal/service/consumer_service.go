package service

import (
	"context"
	"encoding/json"
	"time"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/pkg/logger"
	"spa-registry-be/internal/pkg/mailer"
	"spa-registry-be/pkg/events"
	pktNats "spa-registry-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NotificationPusher pushes a payload to every session subscribed to a topic.
// Implemented by the websocket hub.
type NotificationPusher interface {
	Publish(topic string, notification entity.Notification)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process dispatch topic: websocket push per
// notification, best-effort email where an address was attached, and outbound
// integration events to NATS. Everything here runs after the originating
// commit, so failures only cost a real-time push, never data.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	pusher    NotificationPusher
	mail      mailer.IEmailService
	natsPub   *pktNats.Publisher
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	pusher NotificationPusher,
	mail mailer.IEmailService,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		pusher:    pusher,
		mail:      mail,
		natsPub:   natsPub,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload DispatchPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal dispatch message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed messages are not retriable
		return
	}

	for _, item := range payload.Items {
		notification := item.Notification
		if cs.pusher != nil {
			cs.pusher.Publish(notification.Topic(), notification)
		}
		if item.Email != "" && cs.mail != nil {
			if err := cs.mail.SendDecisionNotice(item.Email, notification.Title, notification.Message); err != nil {
				cs.logger.Warn("Consumer", "Decision email failed", map[string]interface{}{
					"error": err.Error(),
					"topic": notification.Topic(),
				})
			}
		}
	}

	if cs.natsPub != nil {
		for _, ev := range payload.Events {
			evt := events.BaseEvent{
				Type:       ev.Type,
				Data:       ev.Payload,
				OccurredAt: time.Now(),
			}
			if err := cs.natsPub.Publish(ctx, evt); err != nil {
				cs.logger.Warn("Consumer", "Integration event publish failed", map[string]interface{}{
					"error": err.Error(),
					"type":  ev.Type,
				})
			}
		}
	}

	msg.Ack()
}
