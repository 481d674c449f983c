package repository

import (
	"time"

	"careledger/internal/app/ds"
)

func (r *Repository) CreateCareRecipient(rec *ds.CareRecipient) error {
	return r.db.Create(rec).Error
}

func (r *Repository) GetCareRecipientByID(id uint) (*ds.CareRecipient, error) {
	var rec ds.CareRecipient
	if err := r.db.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) ListRecipientsOwnedBy(userID uint) ([]ds.CareRecipient, error) {
	var recipients []ds.CareRecipient
	err := r.db.Where("admin_user_id = ?", userID).Order("id").Find(&recipients).Error
	return recipients, err
}

func (r *Repository) ListRecipientsGrantedTo(userID uint) ([]ds.CareRecipient, error) {
	var recipients []ds.CareRecipient
	err := r.db.Table("care_recipients").
		Joins("JOIN care_recipient_accesses ON care_recipient_accesses.care_recipient_id = care_recipients.id").
		Where("care_recipient_accesses.user_id = ? AND care_recipient_accesses.revoked_at IS NULL", userID).
		Order("care_recipients.id").
		Find(&recipients).Error
	return recipients, err
}

// HasActiveGrant reports whether at least one non-revoked grant row exists.
// Queried fresh on every call: revocation must bite on the next request.
func (r *Repository) HasActiveGrant(recipientID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.CareRecipientAccess{}).
		Where("care_recipient_id = ? AND user_id = ? AND revoked_at IS NULL", recipientID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateAccessGrant(grant *ds.CareRecipientAccess) error {
	return r.db.Create(grant).Error
}

// RevokeAccess soft-revokes every active grant the user holds on the
// recipient. Rows are never deleted.
func (r *Repository) RevokeAccess(recipientID, userID uint, at time.Time) error {
	return r.db.Model(&ds.CareRecipientAccess{}).
		Where("care_recipient_id = ? AND user_id = ? AND revoked_at IS NULL", recipientID, userID).
		Update("revoked_at", at).Error
}

func (r *Repository) ListAccessGrants(recipientID uint) ([]ds.CareRecipientAccess, error) {
	var grants []ds.CareRecipientAccess
	err := r.db.Where("care_recipient_id = ?", recipientID).Order("id").Find(&grants).Error
	return grants, err
}
