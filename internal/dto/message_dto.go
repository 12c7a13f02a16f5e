package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	SitDownId uuid.UUID
	Content   string     `json:"content" validate:"required,max=8000"`
	ReplyToId *uuid.UUID `json:"reply_to_id,omitempty"`
}

type SendMessageResponse struct {
	Message   MessageResponse `json:"message"`
	Mentioned []uuid.UUID     `json:"mentioned,omitempty"`
}

type MessageResponse struct {
	Id             uuid.UUID              `json:"id"`
	SitDownId      uuid.UUID              `json:"sit_down_id"`
	SenderType     string                 `json:"sender_type"`
	SenderUserId   *uuid.UUID             `json:"sender_user_id,omitempty"`
	SenderMemberId *uuid.UUID             `json:"sender_member_id,omitempty"`
	SenderName     string                 `json:"sender_name"`
	AvatarURL      *string                `json:"avatar_url,omitempty"`
	Content        string                 `json:"content"`
	Mentions       []uuid.UUID            `json:"mentions,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	ReplyTo        *MessageResponse       `json:"reply_to,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

type TypingIndicatorResponse struct {
	Id         uuid.UUID `json:"id"`
	SitDownId  uuid.UUID `json:"sit_down_id"`
	MemberId   uuid.UUID `json:"member_id"`
	MemberName string    `json:"member_name"`
	StartedAt  time.Time `json:"started_at"`
}

type TimelineResponse struct {
	Messages []MessageResponse         `json:"messages"`
	Typing   []TypingIndicatorResponse `json:"typing"`
}
