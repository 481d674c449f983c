package repository

import (
	"time"

	"careledger/internal/app/ds"

	"gorm.io/gorm"
)

// GetViewRecord returns nil without error when the user has never viewed the
// log.
func (r *Repository) GetViewRecord(careLogID, userID uint) (*ds.ViewRecord, error) {
	var view ds.ViewRecord
	err := r.db.Where("care_log_id = ? AND user_id = ?", careLogID, userID).First(&view).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// UpsertViewRecord overwrites the watermark, it does not append.
func (r *Repository) UpsertViewRecord(careLogID, userID uint, at time.Time) error {
	existing, err := r.GetViewRecord(careLogID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(&ds.ViewRecord{CareLogID: careLogID, UserID: userID, ViewedAt: at}).Error
	}
	return r.db.Model(&ds.ViewRecord{}).Where("id = ?", existing.ID).Update("viewed_at", at).Error
}
