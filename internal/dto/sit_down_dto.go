package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSitDownRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=255"`
	Description *string     `json:"description,omitempty"`
	MemberIds   []uuid.UUID `json:"member_ids,omitempty"`
}

type CreateSitDownResponse struct {
	Id uuid.UUID `json:"id"`
}

type SitDownResponse struct {
	Id           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Description  *string               `json:"description,omitempty"`
	CreatedBy    uuid.UUID             `json:"created_by"`
	IsCommission bool                  `json:"is_commission"`
	Participants []ParticipantResponse `json:"participants,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

type ParticipantResponse struct {
	Id        uuid.UUID  `json:"id"`
	UserId    *uuid.UUID `json:"user_id,omitempty"`
	MemberId  *uuid.UUID `json:"member_id,omitempty"`
	Name      string     `json:"name"`
	OwnerId   *uuid.UUID `json:"owner_id,omitempty"`
	OwnerName string     `json:"owner_name,omitempty"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	AddedAt   time.Time  `json:"added_at"`
}

type AddParticipantRequest struct {
	SitDownId uuid.UUID
	UserId    *uuid.UUID `json:"user_id,omitempty"`
	MemberId  *uuid.UUID `json:"member_id,omitempty"`
}

type AddParticipantResponse struct {
	Id uuid.UUID `json:"id"`
}
