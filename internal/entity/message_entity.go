package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is an append-only timeline row. Ordering is created_at ascending
// with id as tiebreak. Metadata carries provider/model for member messages,
// error:true for persisted failure notices, and an optional reply_to_id
// soft reference that must resolve lookup-or-absent.
type Message struct {
	Id             uuid.UUID
	SitDownId      uuid.UUID
	SenderType     string
	SenderUserId   *uuid.UUID
	SenderMemberId *uuid.UUID
	Content        string
	Mentions       []uuid.UUID
	Metadata       map[string]interface{}
	CreatedAt      time.Time

	// Joined data, populated by the repository.
	Profile *User
	Member  *Member
}

// ReplyToId returns the soft reference from metadata, if present and valid.
func (m *Message) ReplyToId() *uuid.UUID {
	if m.Metadata == nil {
		return nil
	}
	raw, ok := m.Metadata["reply_to_id"].(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// IsError reports whether this row is a persisted failure notice.
func (m *Message) IsError() bool {
	if m.Metadata == nil {
		return false
	}
	v, _ := m.Metadata["error"].(bool)
	return v
}
