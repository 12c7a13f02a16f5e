package model

import (
	"time"

	"github.com/google/uuid"
)

type Member struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Provider     string    `gorm:"type:varchar(50);not null"`
	Model        string    `gorm:"type:varchar(255);not null"`
	SystemPrompt string    `gorm:"type:text;not null"`
	AvatarURL    *string   `gorm:"type:text"`
	IsTemplate   bool      `gorm:"default:false"`
	TemplateSlug *string   `gorm:"type:varchar(100)"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Member) TableName() string {
	return "members"
}
