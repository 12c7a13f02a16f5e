package dto

import "github.com/google/uuid"

// PublishTimelineEventMessage is the payload carried on the internal
// timeline event bus. Kind is one of message_posted, typing_started,
// typing_stopped.
type PublishTimelineEventMessage struct {
	SitDownId uuid.UUID  `json:"sit_down_id"`
	Kind      string     `json:"kind"`
	MessageId *uuid.UUID `json:"message_id,omitempty"`
	MemberId  *uuid.UUID `json:"member_id,omitempty"`
}
