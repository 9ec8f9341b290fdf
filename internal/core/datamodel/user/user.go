package user

import "time"

// User is the persistence model shared by the auth core and the user domain.
// The auth core only reads Username, PasswordHash, Role, IsActive and
// IsLocked, and only ever writes IsLocked and the last-login timestamps.
type User struct {
	ID                 int64      `gorm:"primaryKey"`
	PublicID           string     `gorm:"column:public_id;uniqueIndex;not null"`
	FirstName          string     `gorm:"column:first_name;not null"`
	LastName           string     `gorm:"column:last_name;not null"`
	Username           string     `gorm:"column:username;uniqueIndex;not null"`
	Email              string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash       string     `gorm:"column:password_hash;not null"`
	ProfileImageURL    string     `gorm:"column:profile_image_url"`
	Role               string     `gorm:"column:role;not null"`
	IsActive           bool       `gorm:"column:is_active;default:true"`
	IsLocked           bool       `gorm:"column:is_locked;default:false"`
	JoinedAt           time.Time  `gorm:"column:joined_at"`
	LastLoginAt        *time.Time `gorm:"column:last_login_at"`
	LastLoginDisplayAt *time.Time `gorm:"column:last_login_display_at"`
	CreatedAt          time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}
