package entity

import (
	"time"

	"github.com/google/uuid"
)

// Member is an AI-backed participant owned by exactly one Don. Name is not
// unique across owners; two Dons may both run a "Tom".
type Member struct {
	Id           uuid.UUID
	OwnerId      uuid.UUID
	Name         string
	Provider     string
	Model        string
	SystemPrompt string
	AvatarURL    *string
	IsTemplate   bool
	TemplateSlug *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
