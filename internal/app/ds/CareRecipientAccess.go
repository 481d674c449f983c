package ds

import "time"

// CareRecipientAccess grants a family member visibility into a care
// recipient's logs. Revocation is soft: the row is kept and revoked_at set,
// so access history survives. A user has active access iff a row exists with
// revoked_at IS NULL.
type CareRecipientAccess struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CareRecipientID uint       `gorm:"not null;index" json:"care_recipient_id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	GrantedBy       uint       `gorm:"not null" json:"granted_by"`
	GrantedAt       time.Time  `gorm:"not null" json:"granted_at"`
	RevokedAt       *time.Time `json:"revoked_at"`

	CareRecipient CareRecipient `gorm:"foreignKey:CareRecipientID" json:"-"`
	User          User          `gorm:"foreignKey:UserID" json:"-"`
}
