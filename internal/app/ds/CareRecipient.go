package ds

import "time"

type CareRecipient struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	AdminUserID uint       `gorm:"not null;index" json:"admin_user_id"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`

	Admin User `gorm:"foreignKey:AdminUserID" json:"-"`
}
