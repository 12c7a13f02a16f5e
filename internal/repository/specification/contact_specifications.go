package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByContactStatus struct {
	Status string
}

func (s ByContactStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByContactEdge matches one directed edge between two Dons.
type ByContactEdge struct {
	UserID        uuid.UUID
	ContactUserID uuid.UUID
}

func (s ByContactEdge) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ? AND contact_user_id = ?", s.UserID, s.ContactUserID)
}

// ByEitherSide matches edges where the user appears on either end.
type ByEitherSide struct {
	UserID uuid.UUID
}

func (s ByEitherSide) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ? OR contact_user_id = ?", s.UserID, s.UserID)
}
