package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SitDownId      uuid.UUID         `gorm:"type:uuid;not null;index:idx_message_sit_down"`
	SenderType     string            `gorm:"type:varchar(20);not null"`
	SenderUserId   *uuid.UUID        `gorm:"type:uuid;index"`
	SenderMemberId *uuid.UUID        `gorm:"type:uuid;index"`
	Content        string            `gorm:"type:text;not null"`
	Mentions       datatypes.JSON    `gorm:"type:jsonb;default:'[]'"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb;default:'{}'"`
	CreatedAt      time.Time         `gorm:"autoCreateTime;index:idx_message_sit_down"`

	Profile *User   `gorm:"foreignKey:SenderUserId"`
	Member  *Member `gorm:"foreignKey:SenderMemberId"`
}

func (Message) TableName() string {
	return "messages"
}

type TypingIndicator struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SitDownId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_typing_sit_down_member"`
	MemberId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_typing_sit_down_member"`
	MemberName string    `gorm:"type:varchar(255);not null"`
	StartedBy  uuid.UUID `gorm:"type:uuid;not null"`
	StartedAt  time.Time `gorm:"autoCreateTime"`
}

func (TypingIndicator) TableName() string {
	return "typing_indicators"
}
