package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/J-A-Y2/Big-Money/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	name     string
	provider domain.AuthProvider
	deleted  bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@test.com", uuid.New().String()[:8]),
		password: "testpassword123",
		name:     "Test User",
		provider: domain.ProviderLocal,
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithProvider sets the identity source
func (b *UserBuilder) WithProvider(provider domain.AuthProvider) *UserBuilder {
	b.provider = provider
	return b
}

// SoftDeleted marks the created user as soft-deleted
func (b *UserBuilder) SoftDeleted() *UserBuilder {
	b.deleted = true
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	hash := string(hashedPassword)
	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: &hash,
		Provider:     b.provider,
		Name:         b.name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	if b.deleted {
		if err := db.Delete(user).Error; err != nil {
			t.Fatalf("failed to soft-delete test user: %v", err)
		}
	}

	return user, b.password
}
