package model

import (
	"time"

	"github.com/google/uuid"
)

type CatalogModel struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Provider  string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_catalog_provider_model"`
	Model     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_catalog_provider_model"`
	Alias     string    `gorm:"type:varchar(255);not null"`
	Enabled   bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CatalogModel) TableName() string {
	return "model_catalog"
}
