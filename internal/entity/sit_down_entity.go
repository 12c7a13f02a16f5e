package entity

import (
	"time"

	"github.com/google/uuid"
)

type SitDown struct {
	Id           uuid.UUID
	Name         string
	Description  *string
	CreatedBy    uuid.UUID
	IsCommission bool
	CreatedAt    time.Time
}

// SitDownParticipant binds either a Don (UserId set) or a member (MemberId
// set) to a sit-down. Exactly one of the two is non-nil.
type SitDownParticipant struct {
	Id        uuid.UUID
	SitDownId uuid.UUID
	UserId    *uuid.UUID
	MemberId  *uuid.UUID
	AddedBy   uuid.UUID
	AddedAt   time.Time

	// Joined data, populated by the repository.
	Profile *User
	Member  *Member
}
