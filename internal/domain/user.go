package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
	ProviderKakao  AuthProvider = "kakao"
)

type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash *string        `json:"-"`
	Provider     AuthProvider   `json:"provider" gorm:"not null;default:'local'"`
	Name         string         `json:"name" gorm:"not null"`
	Nickname     string         `json:"nickname"`
	Birthdate    string         `json:"birthdate"`
	Age          int            `json:"age"`
	Gender       string         `json:"gender"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// HasLocalPassword reports whether the stored hash comes from a password the
// user actually chose. Provider accounts carry a surrogate hash derived from
// the provider subject id; that hash keeps CheckPassword working but is not a
// credential anyone can type.
func (u *User) HasLocalPassword() bool {
	return u.Provider == ProviderLocal && u.PasswordHash != nil
}
