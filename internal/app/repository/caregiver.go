package repository

import (
	"careledger/internal/app/ds"
)

func (r *Repository) GetCaregiverByID(id uint) (*ds.Caregiver, error) {
	var c ds.Caregiver
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) CreateCaregiver(c *ds.Caregiver) error {
	return r.db.Create(c).Error
}

func (r *Repository) UpdateCaregiver(id uint, fields map[string]interface{}) error {
	return r.db.Model(&ds.Caregiver{}).Where("id = ?", id).Updates(fields).Error
}

func (r *Repository) ListCaregiversByRecipient(recipientID uint) ([]ds.Caregiver, error) {
	var caregivers []ds.Caregiver
	err := r.db.Where("care_recipient_id = ?", recipientID).Order("id").Find(&caregivers).Error
	return caregivers, err
}
