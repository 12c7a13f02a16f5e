package model

import (
	"time"

	"github.com/google/uuid"
)

type CommissionContact struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_contact_edge"`
	ContactUserId uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_contact_edge"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	RespondedAt   *time.Time

	Profile        *User `gorm:"foreignKey:UserId"`
	ContactProfile *User `gorm:"foreignKey:ContactUserId"`
}

func (CommissionContact) TableName() string {
	return "commission_contacts"
}
