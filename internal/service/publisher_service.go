package service

import (
	"context"
	"encoding/json"

	"spa-registry-be/internal/lifecycle"
	"spa-registry-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// DispatchPayload is the wire shape on the in-process dispatch topic. One
// message per committed command preserves commit order per topic.
type DispatchPayload struct {
	Items  []DispatchItem        `json:"items"`
	Events []lifecycle.EventSpec `json:"events,omitempty"`
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

// NewPublisherService returns the IDispatcher the executor hands committed
// notifications to. Publishing happens after commit and is best-effort:
// failures are logged, never returned.
func NewPublisherService(topicName string, pubSub *gochannel.GoChannel, log logger.ILogger) IDispatcher {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (s *publisherService) Dispatch(ctx context.Context, items []DispatchItem, events []lifecycle.EventSpec) {
	if len(items) == 0 && len(events) == 0 {
		return
	}

	payload, err := json.Marshal(DispatchPayload{Items: items, Events: events})
	if err != nil {
		s.logger.Error("Dispatcher", "Failed to marshal dispatch payload", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Error("Dispatcher", "Failed to publish dispatch message", map[string]interface{}{"error": err.Error()})
	}
}
