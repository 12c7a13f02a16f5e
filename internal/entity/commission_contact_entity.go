package entity

import (
	"time"

	"github.com/google/uuid"
)

// CommissionContact is a directed edge between two Dons. Symmetric
// acceptance writes the mirrored edge. Accepted contacts gate whose
// members may be seated at a shared sit-down.
type CommissionContact struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	ContactUserId uuid.UUID
	Status        string
	CreatedAt     time.Time
	RespondedAt   *time.Time

	// Joined data, populated by the repository.
	Profile        *User
	ContactProfile *User
}
