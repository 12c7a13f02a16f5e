package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRefreshToken stores only the sha256 of the issued token.
type UserRefreshToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	IpAddress string
	UserAgent string
}
