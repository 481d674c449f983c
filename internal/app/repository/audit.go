package repository

import (
	"careledger/internal/app/ds"
)

// CreateAuditEntry appends one audit row. Entries are never updated or
// deleted after this point.
func (r *Repository) CreateAuditEntry(entry *ds.AuditEntry) error {
	return r.db.Create(entry).Error
}

// ListAuditEntries returns the trail most-recent-first, for display.
func (r *Repository) ListAuditEntries(careLogID uint) ([]ds.AuditEntry, error) {
	var entries []ds.AuditEntry
	err := r.db.Where("care_log_id = ?", careLogID).Order("created_at DESC, id DESC").Find(&entries).Error
	return entries, err
}

// ListAuditEntriesAsc returns the trail oldest-first, for watermark
// comparisons.
func (r *Repository) ListAuditEntriesAsc(careLogID uint) ([]ds.AuditEntry, error) {
	var entries []ds.AuditEntry
	err := r.db.Where("care_log_id = ?", careLogID).Order("created_at ASC, id ASC").Find(&entries).Error
	return entries, err
}
