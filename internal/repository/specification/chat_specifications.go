package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySitDownID struct {
	SitDownID uuid.UUID
}

func (s BySitDownID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sit_down_id = ?", s.SitDownID)
}

type ByOwnerID struct {
	OwnerID uuid.UUID
}

func (s ByOwnerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}

type ByMemberID struct {
	MemberID uuid.UUID
}

func (s ByMemberID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("member_id = ?", s.MemberID)
}

// CreatedAfter filters rows with created_at strictly after the cutoff.
// Used for incremental timeline fetches.
type CreatedAfter struct {
	After time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at > ?", s.After)
}

// TimelineOrder orders messages the way the timeline renders them:
// created_at ascending with id as a stable tiebreak.
type TimelineOrder struct{}

func (s TimelineOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}
