package models

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	FullName  string    `json:"fullName" gorm:"not null;size:200"`
	Role      UserRole  `json:"role" gorm:"not null;default:user;size:20;index"`
	AvatarURL *string   `json:"avatarUrl" gorm:"size:500"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Resumes     []Resume     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Interviews  []Interview  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Evaluations []Evaluation `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}
