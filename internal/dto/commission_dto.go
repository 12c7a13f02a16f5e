package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendContactRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SendContactRequestResponse struct {
	Id uuid.UUID `json:"id"`
}

type RespondContactRequest struct {
	Id     uuid.UUID
	Accept bool `json:"accept"`
}

type ContactResponse struct {
	Id          uuid.UUID  `json:"id"`
	UserId      uuid.UUID  `json:"user_id"`
	ContactId   uuid.UUID  `json:"contact_id"`
	ContactName string     `json:"contact_name"`
	Email       string     `json:"email"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	Status      string     `json:"status"`
	Inbound     bool       `json:"inbound"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}
