package service

import (
	"context"
	"encoding/json"

	"the-family-be/internal/dto"
	"the-family-be/internal/entity"
	"the-family-be/internal/repository/contract"

	"github.com/google/uuid"
)

// Timeline event kinds carried on the internal bus.
const (
	TimelineEventMessagePosted = "message_posted"
	TimelineEventTypingStarted = "typing_started"
	TimelineEventTypingStopped = "typing_stopped"
)

func publishTimelineEvent(publisher IPublisherService, event dto.PublishTimelineEventMessage) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	// Bus delivery is best effort. The timeline is the source of truth
	// and clients refetch it on reconnect.
	_ = publisher.Publish(context.Background(), payload)
}

// notifyingMessageRepository publishes a timeline event after every
// successful insert. Wraps the store the orchestrator writes through so
// member responses and error notices push to subscribed clients.
type notifyingMessageRepository struct {
	contract.MessageRepository
	publisher IPublisherService
}

func NewNotifyingMessageRepository(inner contract.MessageRepository, publisher IPublisherService) contract.MessageRepository {
	return &notifyingMessageRepository{MessageRepository: inner, publisher: publisher}
}

func (r *notifyingMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if err := r.MessageRepository.Create(ctx, message); err != nil {
		return err
	}
	messageId := message.Id
	publishTimelineEvent(r.publisher, dto.PublishTimelineEventMessage{
		SitDownId: message.SitDownId,
		Kind:      TimelineEventMessagePosted,
		MessageId: &messageId,
	})
	return nil
}

// notifyingTypingIndicatorRepository mirrors indicator changes onto the
// timeline event bus.
type notifyingTypingIndicatorRepository struct {
	contract.TypingIndicatorRepository
	publisher IPublisherService
}

func NewNotifyingTypingIndicatorRepository(inner contract.TypingIndicatorRepository, publisher IPublisherService) contract.TypingIndicatorRepository {
	return &notifyingTypingIndicatorRepository{TypingIndicatorRepository: inner, publisher: publisher}
}

func (r *notifyingTypingIndicatorRepository) Replace(ctx context.Context, indicator *entity.TypingIndicator) error {
	if err := r.TypingIndicatorRepository.Replace(ctx, indicator); err != nil {
		return err
	}
	memberId := indicator.MemberId
	publishTimelineEvent(r.publisher, dto.PublishTimelineEventMessage{
		SitDownId: indicator.SitDownId,
		Kind:      TimelineEventTypingStarted,
		MemberId:  &memberId,
	})
	return nil
}

func (r *notifyingTypingIndicatorRepository) Delete(ctx context.Context, sitDownId, memberId uuid.UUID) error {
	if err := r.TypingIndicatorRepository.Delete(ctx, sitDownId, memberId); err != nil {
		return err
	}
	id := memberId
	publishTimelineEvent(r.publisher, dto.PublishTimelineEventMessage{
		SitDownId: sitDownId,
		Kind:      TimelineEventTypingStopped,
		MemberId:  &id,
	})
	return nil
}
