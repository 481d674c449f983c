package ds

import "time"

type Caregiver struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Phone           string    `gorm:"type:varchar(30)" json:"phone"`
	PIN             string    `gorm:"column:pin_hash;type:varchar(255)" json:"-"`
	CareRecipientID uint      `gorm:"not null;index" json:"care_recipient_id"`
	IsActive        bool      `gorm:"type:boolean;default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`

	CareRecipient CareRecipient `gorm:"foreignKey:CareRecipientID" json:"-"`
}
