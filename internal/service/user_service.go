package service

import (
	"context"
	"errors"
	"log"

	"github.com/J-A-Y2/Big-Money/internal/domain"
	"github.com/J-A-Y2/Big-Money/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MailSender delivers the signup verification message. Implemented by
// internal/mail; faked in tests.
type MailSender interface {
	SendMemberJoinVerification(toEmail, verifyToken string) error
}

type UserService struct {
	userRepo repository.UserRepository
	identity *IdentityService
	auth     *AuthService
	mailer   MailSender
}

func NewUserService(userRepo repository.UserRepository, identity *IdentityService, auth *AuthService, mailer MailSender) *UserService {
	return &UserService{
		userRepo: userRepo,
		identity: identity,
		auth:     auth,
		mailer:   mailer,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	Nickname  string
	Birthdate string
	Age       int
	Gender    string
}

// Register creates a local account and sends the member-join verification
// email. Registering an email held by a live account is a conflict; a
// soft-deleted account with the same email is resurrected instead.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	user, err := s.identity.Resolve(ctx, Profile{
		Provider:    domain.ProviderLocal,
		Email:       input.Email,
		DisplayName: input.Name,
		Secret:      input.Password,
		Nickname:    input.Nickname,
		Birthdate:   input.Birthdate,
		Age:         input.Age,
		Gender:      input.Gender,
	})
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendMemberJoinVerification(user.Email, user.ID.String()); err != nil {
		// The account exists either way; a lost email only delays login.
		log.Printf("ERROR [UserService.Register] verification email to %s failed: %v", user.Email, err)
	}

	log.Printf("INFO [UserService.Register] registered %s (user %s)", user.Email, user.ID)
	return user, nil
}

// VerifyEmail completes signup: the verify token is the user id embedded in
// the emailed link, and a successful match logs the new account in.
func (s *UserService) VerifyEmail(ctx context.Context, verifyToken string, ip string, dev domain.DeviceInfo) (*LoginResult, error) {
	userID, err := uuid.Parse(verifyToken)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return s.auth.Login(ctx, LoginInput{UserID: user.ID, IP: ip, Device: dev})
}

type UpdateUserInput struct {
	Name      *string
	Nickname  *string
	Birthdate *string
	Age       *int
	Gender    *string
}

func (s *UserService) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Nickname != nil {
		user.Nickname = *input.Nickname
	}
	if input.Birthdate != nil {
		user.Birthdate = *input.Birthdate
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete soft-deletes the account and drops its refresh session so the
// remaining tokens die with it.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.SoftDelete(ctx, userID); err != nil {
		return err
	}
	return s.auth.Logout(ctx, userID)
}
