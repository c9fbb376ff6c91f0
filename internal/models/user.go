// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. Accounts are disabled rather than
// hard-deleted so recipe ownership stays resolvable.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"userUuId"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	UserName       string    `gorm:"uniqueIndex;not null" json:"userName"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	IsAdmin        bool      `gorm:"not null;default:false" json:"isAdmin"`
	Disabled       bool      `gorm:"not null;default:false" json:"disabled"`
	PrivacySetting bool      `gorm:"not null;default:false" json:"privacySetting"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Recipes []Recipe `gorm:"foreignKey:UserID" json:"recipes,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the UUID primary key when the caller did not.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PublicUser is the projection returned by email search and embedded in
// recipe listings. Administrative and credential fields are excluded.
type PublicUser struct {
	ID       uuid.UUID `json:"userUuId"`
	Email    string    `json:"email"`
	UserName string    `json:"userName"`
}

// Public strips a User down to its shareable projection.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Email:    u.Email,
		UserName: u.UserName,
	}
}
