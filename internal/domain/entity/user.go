package entity

import (
	"time"
)

// UserRole represents user roles in the system
type UserRole string

const (
	RoleDeputy      UserRole = "deputy"
	RoleCoordinator UserRole = "coordinator"
	RoleAdmin       UserRole = "admin"
)

// IsAdmin reports whether the role grants administrator rights.
func (r UserRole) IsAdmin() bool { return r == RoleAdmin }

// IsCoordinator reports whether the role is a regional coordinator.
func (r UserRole) IsCoordinator() bool { return r == RoleCoordinator }

// IsDeputy reports whether the role is a rank-and-file deputy.
func (r UserRole) IsDeputy() bool { return r == RoleDeputy }

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == RoleDeputy || r == RoleCoordinator || r == RoleAdmin
}

// User represents a registered participant. The primary key is the
// external messaging identifier the user first contacted the bot with.
// Login and PasswordHash stay nil until the staff approves the form.
type User struct {
	ID           int64      `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id"`
	Login        *string    `gorm:"uniqueIndex;size:150" json:"login,omitempty"`
	PasswordHash *string    `gorm:"column:password_hash;size:128" json:"-"`
	Role         UserRole   `gorm:"size:20;not null;default:deputy" json:"role"`
	IsActive     bool       `gorm:"column:is_active;not null;default:false" json:"is_active"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`

	Form *RegistrationForm `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"form,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// LoginName returns the login or empty when credentials were never issued.
func (u *User) LoginName() string {
	if u.Login == nil {
		return ""
	}
	return *u.Login
}

// Region returns the region from the linked form, or empty when no form exists.
func (u *User) Region() string {
	if u.Form == nil {
		return ""
	}
	return u.Form.Region
}

// RefreshToken represents a refresh token for JWT authentication
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;size:500;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for RefreshToken
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsValid checks if the refresh token is valid
func (rt *RefreshToken) IsValid() bool {
	return !rt.Revoked && !rt.IsExpired()
}
