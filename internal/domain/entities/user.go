package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User represents a user in the system
type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email    string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name     string    `json:"name" gorm:"type:varchar(255);not null"`
	Role     UserRole  `json:"role" gorm:"type:varchar(50);default:'member';not null"`
	IsActive bool      `json:"is_active" gorm:"default:true;not null"`

	PasswordHash string `json:"-" gorm:"column:password_hash;type:text;not null"` // Never expose in JSON

	// Profile
	Timezone string `json:"timezone" gorm:"type:varchar(50);default:'UTC';not null"`
	Language string `json:"language" gorm:"type:varchar(10);default:'en';not null"`

	// Status
	LastLoginAt *time.Time `json:"last_login_at,omitempty" gorm:"type:timestamp"`

	// Preferences (stored as JSONB in PostgreSQL)
	ReportPreferences datatypes.JSON `json:"report_preferences" gorm:"type:jsonb;default:'{}'"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// UserRole defines user roles
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	}
	return false
}

// NewUser creates a new user with default values
func NewUser(email, name string) *User {
	now := time.Now()

	// Default report preferences
	reportPrefs, _ := json.Marshal(map[string]interface{}{
		"include_transcript": true,
		"formats":            []string{"pdf", "markdown"},
	})

	return &User{
		ID:                uuid.New(),
		Email:             email,
		Name:              name,
		Role:              RoleMember,
		IsActive:          true,
		Timezone:          "UTC",
		Language:          "en",
		ReportPreferences: reportPrefs,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// UpdateLastLogin updates the last login timestamp
func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}
