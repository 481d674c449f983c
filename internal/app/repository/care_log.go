package repository

import (
	"time"

	"careledger/internal/app/ds"

	"gorm.io/gorm"
)

func (r *Repository) CreateCareLog(log *ds.CareLog) error {
	return r.db.Create(log).Error
}

func (r *Repository) GetCareLogByID(id uint) (*ds.CareLog, error) {
	var log ds.CareLog
	if err := r.db.First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *Repository) GetDraftLog(recipientID, caregiverID uint, date time.Time) (*ds.CareLog, error) {
	var log ds.CareLog
	err := r.db.Where("care_recipient_id = ? AND caregiver_id = ? AND log_date = ? AND status = ?",
		recipientID, caregiverID, date, ds.StatusDraft).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// SetSubmitted finalizes a draft. The status guard re-validates the
// precondition at the point of write; zero rows affected means the log moved
// under us between the entry check and here.
func (r *Repository) SetSubmitted(id uint, at time.Time) (int64, error) {
	res := r.db.Model(&ds.CareLog{}).
		Where("id = ? AND status = ?", id, ds.StatusDraft).
		Updates(map[string]interface{}{"status": ds.StatusSubmitted, "submitted_at": at})
	return res.RowsAffected, res.Error
}

// SetInvalidated re-opens a submitted log for editing. completed_sections is
// deliberately left untouched so previously shared sections stay visible.
func (r *Repository) SetInvalidated(id, byUserID uint, reason string, at time.Time) (int64, error) {
	res := r.db.Model(&ds.CareLog{}).
		Where("id = ? AND status = ?", id, ds.StatusSubmitted).
		Updates(map[string]interface{}{
			"status":              ds.StatusDraft,
			"invalidated_at":      at,
			"invalidated_by":      byUserID,
			"invalidation_reason": reason,
		})
	return res.RowsAffected, res.Error
}

// SaveDraft persists only the listed columns, and only while the row is
// still a draft.
func (r *Repository) SaveDraft(log *ds.CareLog, columns []string) (int64, error) {
	res := r.db.Model(log).
		Where("status = ?", ds.StatusDraft).
		Select(columns).
		Updates(*log)
	return res.RowsAffected, res.Error
}

// MergeCompletedSection upserts one section's completion entry with a
// read-merge-write on the current row. A blind overwrite of the whole map
// could lose a concurrent submission of the other section.
func (r *Repository) MergeCompletedSection(id uint, section string, completion ds.SectionCompletion) (int64, error) {
	var log ds.CareLog
	if err := r.db.First(&log, id).Error; err != nil {
		return 0, err
	}
	merged := ds.CompletedSections{}
	for k, v := range log.CompletedSections {
		merged[k] = v
	}
	merged[section] = completion

	// struct update so the json serializer is applied to the column value
	res := r.db.Model(&ds.CareLog{ID: id}).
		Where("status = ?", ds.StatusDraft).
		Select("completed_sections").
		Updates(ds.CareLog{CompletedSections: merged})
	return res.RowsAffected, res.Error
}

// ListVisibleLogs returns the logs a family principal may see at all:
// finalized ones plus drafts with at least one completed section.
func (r *Repository) ListVisibleLogs(recipientID uint) ([]ds.CareLog, error) {
	var logs []ds.CareLog
	err := r.db.Where("care_recipient_id = ?", recipientID).
		Where(r.db.Where("status = ?", ds.StatusSubmitted).
			Or("completed_sections IS NOT NULL AND completed_sections NOT IN ('', 'null', '{}')")).
		Order("log_date DESC, id DESC").
		Find(&logs).Error
	return logs, err
}

func (r *Repository) ListLogsByCaregiver(caregiverID uint) ([]ds.CareLog, error) {
	var logs []ds.CareLog
	err := r.db.Where("caregiver_id = ?", caregiverID).Order("log_date DESC, id DESC").Find(&logs).Error
	return logs, err
}

func (r *Repository) IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
