package ds

import "time"

// ViewRecord is a per-viewer watermark, not a log: at most one row per
// (care log, user), viewed_at overwritten on every view.
type ViewRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CareLogID uint      `gorm:"not null;uniqueIndex:idx_log_viewer" json:"care_log_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_log_viewer" json:"user_id"`
	ViewedAt  time.Time `gorm:"not null" json:"viewed_at"`
}
