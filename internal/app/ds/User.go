package ds

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password string `gorm:"column:password_hash;type:varchar(255)" json:"-"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Role     string `gorm:"type:varchar(20);not null;default:member" json:"role"`
	IsActive bool   `gorm:"type:boolean;default:true" json:"is_active"`
}
