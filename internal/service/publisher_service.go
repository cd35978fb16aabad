package service

import (
	"context"
	"encoding/json"
	"time"

	"skill-exchange-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	Publish(ctx context.Context, evt events.Event) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

// Publish serializes the event payload and tags the message with the event
// type so consumers can route without unmarshalling.
func (s *publisherService) Publish(ctx context.Context, evt events.Event) error {
	payload, err := json.Marshal(evt.Payload())
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", evt.EventType())
	msg.Metadata.Set("occurred_at", evt.Timestamp().Format(time.RFC3339Nano))
	return s.pubSub.Publish(s.topicName, msg)
}
