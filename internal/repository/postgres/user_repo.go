package postgres

import (
	"context"

	"github.com/J-A-Y2/Big-Money/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, includeDeleted bool) (*domain.User, error) {
	tx := r.db.WithContext(ctx)
	if includeDeleted {
		tx = tx.Unscoped()
	}

	var user domain.User
	err := tx.First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetPasswordHashByID(ctx context.Context, id uuid.UUID) (string, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Select("password_hash").First(&user, "id = ?", id).Error
	if err != nil {
		return "", err
	}
	if user.PasswordHash == nil {
		return "", nil
	}
	return *user.PasswordHash, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Restore(ctx context.Context, user *domain.User) error {
	// Unscoped so gorm writes the cleared deleted_at instead of filtering
	// the row out of the update.
	user.DeletedAt = gorm.DeletedAt{}
	return r.db.WithContext(ctx).Unscoped().Save(user).Error
}

func (r *userRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id).Error
}
