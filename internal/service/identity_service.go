package service

import (
	"context"
	"errors"
	"log"

	"github.com/J-A-Y2/Big-Money/internal/domain"
	"github.com/J-A-Y2/Big-Money/internal/password"
	"github.com/J-A-Y2/Big-Money/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the canonical shape every identity source maps into before it
// touches the account store: one mapping function per provider, no
// provider-specific types past this point.
type Profile struct {
	Provider    domain.AuthProvider
	SubjectID   string
	Email       string
	DisplayName string
	// Secret is the raw local password during registration. Provider
	// profiles leave it empty and get a surrogate derived from SubjectID.
	Secret string

	// Optional profile attributes carried by local registration
	Nickname  string
	Birthdate string
	Age       int
	Gender    string
}

// IdentityService resolves a normalized profile against the account store:
// create, reuse, or resurrect a soft-deleted account.
type IdentityService struct {
	userRepo repository.UserRepository
	hasher   *password.Hasher
}

func NewIdentityService(userRepo repository.UserRepository, hasher *password.Hasher) *IdentityService {
	return &IdentityService{userRepo: userRepo, hasher: hasher}
}

// Resolve runs the find-or-restore algorithm. A live account is a conflict
// for local registration and a plain reuse for provider logins; a
// soft-deleted account is resurrected under its original id with the new
// profile's fields. At most one account write happens per call.
func (s *IdentityService) Resolve(ctx context.Context, profile Profile) (*domain.User, error) {
	if profile.Email == "" {
		// No email claim means the provider is misconfigured, not that the
		// user did anything wrong.
		return nil, domain.ErrEmailClaimMissing
	}

	existing, err := s.userRepo.GetByEmail(ctx, profile.Email, true)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		if !existing.DeletedAt.Valid {
			if profile.Provider == domain.ProviderLocal {
				return nil, domain.ErrUserAlreadyExists
			}
			return existing, nil
		}
		return s.restore(ctx, existing, profile)
	}

	return s.create(ctx, profile)
}

func (s *IdentityService) restore(ctx context.Context, user *domain.User, profile Profile) (*domain.User, error) {
	hash, err := s.secretHash(profile)
	if err != nil {
		return nil, err
	}

	user.Provider = profile.Provider
	user.Name = profile.DisplayName
	user.PasswordHash = &hash
	user.Nickname = profile.Nickname
	user.Birthdate = profile.Birthdate
	user.Age = profile.Age
	user.Gender = profile.Gender

	if err := s.userRepo.Restore(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("INFO [IdentityService.Resolve] restored soft-deleted account %s for %s", user.ID, user.Email)
	return user, nil
}

func (s *IdentityService) create(ctx context.Context, profile Profile) (*domain.User, error) {
	hash, err := s.secretHash(profile)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        profile.Email,
		PasswordHash: &hash,
		Provider:     profile.Provider,
		Name:         profile.DisplayName,
		Nickname:     profile.Nickname,
		Birthdate:    profile.Birthdate,
		Age:          profile.Age,
		Gender:       profile.Gender,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// secretHash hashes the profile's secret, falling back to the provider's
// opaque subject id when the provider supplies no password of its own. The
// surrogate keeps CheckPassword usable for provider accounts.
func (s *IdentityService) secretHash(profile Profile) (string, error) {
	secret := profile.Secret
	if secret == "" {
		secret = profile.SubjectID
	}
	return s.hasher.Hash(secret)
}
