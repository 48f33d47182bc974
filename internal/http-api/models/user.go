package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ReservedUsername cannot be registered; it addresses the caller's own
// profile on /users/me.
const ReservedUsername = "me"

type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid"`
	Username  string     `json:"username" gorm:"uniqueIndex;not null;size:100"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null;size:100"`
	Role      string     `json:"role" gorm:"default:'user';not null;size:100"`
	IsStaff   bool       `json:"-" gorm:"default:false;not null"`
	FirstName string     `json:"first_name,omitempty" gorm:"size:100"`
	LastName  string     `json:"last_name,omitempty" gorm:"size:100"`
	Bio       string     `json:"bio,omitempty" gorm:"size:1000"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

// IsAdmin reports whether the user carries admin privileges, either through
// the admin role or the staff flag.
func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin || user.IsStaff
}

func (user *User) IsModerator() bool {
	return user.Role == RoleModerator
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

func (User) TableName() string {
	return "users"
}
