package entity

import (
	"time"

	"github.com/google/uuid"
)

// User tiers. Storage only; tier management screens are out of scope.
const (
	UserTierGodfather = "godfather"
	UserTierBoss      = "boss"
	UserTierAssociate = "associate"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	DisplayName  string
	Tier         string
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
