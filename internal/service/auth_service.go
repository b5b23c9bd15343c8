package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/J-A-Y2/Big-Money/internal/config"
	"github.com/J-A-Y2/Big-Money/internal/domain"
	"github.com/J-A-Y2/Big-Money/internal/password"
	"github.com/J-A-Y2/Big-Money/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService is the session orchestrator: it validates credentials, issues
// token pairs, and keeps the refresh-session cache in step with them.
type AuthService struct {
	userRepo repository.UserRepository
	sessions repository.SessionStore
	tokens   *TokenService
	hasher   *password.Hasher
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, sessions repository.SessionStore, tokens *TokenService, hasher *password.Hasher, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		cfg:      cfg,
	}
}

type LoginInput struct {
	UserID uuid.UUID
	IP     string
	Device domain.DeviceInfo
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
}

// ValidateUser checks an email/password pair against the account store.
// A missing account and a wrong password both surface ErrUserNotFound so the
// response does not reveal which check failed.
func (s *AuthService) ValidateUser(ctx context.Context, email, pass string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if user.PasswordHash == nil || !s.hasher.Compare(pass, *user.PasswordHash) {
		return nil, domain.ErrUserNotFound
	}

	return user, nil
}

// Login issues both tokens for an already-authenticated subject and writes
// the refresh session. The caller is responsible for having validated the
// user id; none of the identity checks re-run here.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	accessToken, err := s.tokens.GenerateAccessToken(input.UserID.String())
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(input.UserID.String())
	if err != nil {
		return nil, err
	}

	// The cache entry must not expire before the refresh token itself,
	// otherwise a still-valid token would outlive its revocation record.
	ttl := time.Duration(s.cfg.RefreshTokenExpirationDays) * 24 * time.Hour

	session := &domain.RefreshSession{
		RefreshToken: refreshToken,
		IP:           input.IP,
		Device:       input.Device,
	}
	if err := s.sessions.Put(ctx, input.UserID, session, ttl); err != nil {
		return nil, fmt.Errorf("store refresh session: %w", err)
	}

	return &LoginResult{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

type RefreshInput struct {
	RefreshToken string
	IP           string
	Device       domain.DeviceInfo
}

// Refresh trades a valid refresh token for a new access token. The presented
// token must decode, its subject must hold a live session, and the stored
// token must match the presented one; the session record itself is left
// untouched (no rotation). Every failure surfaces as ErrUnauthorized so the
// boundary clears both client tokens and forces a re-login.
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (string, error) {
	sub, ok := s.tokens.DecodeToken(input.RefreshToken)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			log.Printf("ERROR [AuthService.Refresh] session lookup failed: %v", err)
		}
		return "", domain.ErrUnauthorized
	}

	if session.RefreshToken != input.RefreshToken {
		// A later login replaced this session; the old token is dead even
		// though its signature still verifies.
		return "", domain.ErrUnauthorized
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return "", domain.ErrUnauthorized
	}

	accessToken, err := s.tokens.GenerateAccessToken(userID.String())
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	return accessToken, nil
}

// Logout deletes the refresh session. Idempotent: logging out twice, or with
// no session at all, is not an error.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.Delete(ctx, userID)
}

// CheckPassword re-confirms the current user's password before a sensitive
// action. It does not touch session state.
func (s *AuthService) CheckPassword(ctx context.Context, userID uuid.UUID, pass string) error {
	hash, err := s.userRepo.GetPasswordHashByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if hash == "" || !s.hasher.Compare(pass, hash) {
		return domain.ErrUnauthorized
	}
	return nil
}
