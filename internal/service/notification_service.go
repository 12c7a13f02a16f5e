package service

import (
	"context"
	"fmt"

	"the-family-be/internal/pkg/logger"
	"the-family-be/internal/websocket"
	"the-family-be/pkg/events"

	pktNats "the-family-be/pkg/nats"

	"github.com/google/uuid"
)

// INotificationService bridges commission contact events from NATS to the
// websocket hub so the affected Don sees the notice without refetching.
type INotificationService interface {
	Start() error
}

type notificationService struct {
	subscriber *pktNats.Subscriber
	hub        *websocket.Hub
	log        logger.ILogger
}

func NewNotificationService(subscriber *pktNats.Subscriber, hub *websocket.Hub, log logger.ILogger) INotificationService {
	return &notificationService{
		subscriber: subscriber,
		hub:        hub,
		log:        log,
	}
}

func (s *notificationService) Start() error {
	if s.subscriber == nil {
		// NATS is optional infrastructure; the HTTP surface still works.
		return nil
	}

	if err := s.subscriber.Subscribe(pktNats.Subject(events.TypeContactRequested), "contact-requested-notifier", s.handleContactEvent); err != nil {
		return fmt.Errorf("failed to subscribe to contact requests: %w", err)
	}
	if err := s.subscriber.Subscribe(pktNats.Subject(events.TypeContactResponded), "contact-responded-notifier", s.handleContactEvent); err != nil {
		return fmt.Errorf("failed to subscribe to contact responses: %w", err)
	}
	return nil
}

func (s *notificationService) handleContactEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	target, ok := notifyTarget(payload)
	if !ok {
		s.log.Warn("NotificationService", "Contact event without a notify target, skipping", map[string]interface{}{
			"event": event.EventType(),
		})
		return nil
	}

	s.hub.Send(target, map[string]interface{}{
		"event":   event.EventType(),
		"payload": payload,
	})
	return nil
}

// notifyTarget picks who the notice is for: the invited Don on a request,
// the original requester on a response.
func notifyTarget(payload map[string]interface{}) (uuid.UUID, bool) {
	for _, key := range []string{"to_user_id", "notify_user_id"} {
		raw, ok := payload[key].(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		return id, true
	}
	return uuid.Nil, false
}
