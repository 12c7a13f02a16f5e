package model

import (
	"time"

	"github.com/google/uuid"
)

type SitDown struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Description  *string   `gorm:"type:text"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null;index"`
	IsCommission bool      `gorm:"default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (SitDown) TableName() string {
	return "sit_downs"
}

type SitDownParticipant struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SitDownId uuid.UUID  `gorm:"type:uuid;not null;index:idx_participant_sit_down"`
	UserId    *uuid.UUID `gorm:"type:uuid;index"`
	MemberId  *uuid.UUID `gorm:"type:uuid;index"`
	AddedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	AddedAt   time.Time  `gorm:"autoCreateTime"`

	Profile *User   `gorm:"foreignKey:UserId"`
	Member  *Member `gorm:"foreignKey:MemberId"`
}

func (SitDownParticipant) TableName() string {
	return "sit_down_participants"
}
