package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MESSAGE_POSTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes used on the bus.
const (
	TypeMessagePosted    = "MESSAGE_POSTED"
	TypeContactRequested = "CONTACT_REQUESTED"
	TypeContactResponded = "CONTACT_RESPONDED"
)

// NewMessagePosted is published after a message row lands on a sit-down
// timeline, so interested consumers can fan it out.
func NewMessagePosted(sitDownId, messageId uuid.UUID, senderType string) Event {
	return BaseEvent{
		Type: TypeMessagePosted,
		Data: map[string]interface{}{
			"sit_down_id": sitDownId.String(),
			"message_id":  messageId.String(),
			"sender_type": senderType,
		},
		OccurredAt: time.Now(),
	}
}

// NewContactRequested is published when a Don sends a commission contact
// request to another Don.
func NewContactRequested(contactId, fromUserId, toUserId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeContactRequested,
		Data: map[string]interface{}{
			"contact_id":   contactId.String(),
			"from_user_id": fromUserId.String(),
			"to_user_id":   toUserId.String(),
		},
		OccurredAt: time.Now(),
	}
}

// NewContactResponded is published when a contact request is accepted or
// declined. notifyUserId is the Don who sent the original request.
func NewContactResponded(contactId, respondedBy, notifyUserId uuid.UUID, status string) Event {
	return BaseEvent{
		Type: TypeContactResponded,
		Data: map[string]interface{}{
			"contact_id":     contactId.String(),
			"responded_by":   respondedBy.String(),
			"notify_user_id": notifyUserId.String(),
			"status":         status,
		},
		OccurredAt: time.Now(),
	}
}
