package domain

import "time"

// SoftDelete is the shared soft-delete capability composed into Customer and
// Product. The row survives; queries filter on the flag.
type SoftDelete struct {
	IsDeleted    bool       `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
	DeletedOnUTC *time.Time `gorm:"column:deleted_on_utc" json:"deleted_on_utc,omitempty"`
}

// MarkDeleted sets the flag and timestamp once. Deleting twice is a no-op the
// second time; the original deletion timestamp is never overwritten.
func (s *SoftDelete) MarkDeleted() {
	if s.IsDeleted {
		return
	}
	now := time.Now().UTC()
	s.IsDeleted = true
	s.DeletedOnUTC = &now
}

func (s *SoftDelete) Deleted() bool { return s.IsDeleted }
