package entity

import (
	"time"

	"github.com/google/uuid"
)

// TypingIndicator is ephemeral state keyed by (sit_down_id, member_id).
// At most one row per member per sit-down; writers replace, never stack.
type TypingIndicator struct {
	Id         uuid.UUID
	SitDownId  uuid.UUID
	MemberId   uuid.UUID
	MemberName string
	StartedBy  uuid.UUID
	StartedAt  time.Time
}
