package entity

import (
	"time"

	"github.com/google/uuid"
)

// CatalogModel is an entry in the model catalog members are provisioned from.
type CatalogModel struct {
	Id        uuid.UUID
	Provider  string
	Model     string
	Alias     string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
