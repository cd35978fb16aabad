package service

import (
	"context"
	"encoding/json"

	"skill-exchange-be/internal/dto"
	"skill-exchange-be/internal/pkg/logger"
	"skill-exchange-be/internal/websocket"
	"skill-exchange-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IBroadcastService consumes persisted-message events and fans them out
// to the open websocket connections of the chat.
type IBroadcastService interface {
	Consume(ctx context.Context) error
}

type broadcastService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *websocket.Hub
	logger    logger.ILogger
}

func NewBroadcastService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
	log logger.ILogger,
) IBroadcastService {
	return &broadcastService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
		logger:    log,
	}
}

func (s *broadcastService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *broadcastService) processMessage(msg *message.Message) {
	if msg.Metadata.Get("event_type") != events.MessageCreated {
		msg.Ack()
		return
	}

	var evt dto.MessageCreatedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		s.logger.Error("Broadcast", "Failed to unmarshal event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed, retrying cannot help
		return
	}

	frame, err := json.Marshal(dto.MessageBroadcastFrame{
		Type:           "message",
		Id:             evt.MessageId,
		ChatId:         evt.ChatId,
		SenderId:       evt.SenderId,
		SenderUsername: evt.SenderUsername,
		Text:           evt.Text,
		CreatedAt:      evt.CreatedAt,
	})
	if err != nil {
		msg.Ack()
		return
	}

	s.hub.Broadcast(evt.ChatId, frame)
	msg.Ack()
}
