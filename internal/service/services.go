package service

import (
	"github.com/J-A-Y2/Big-Money/internal/config"
	"github.com/J-A-Y2/Big-Money/internal/password"
	"github.com/J-A-Y2/Big-Money/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Token    *TokenService
	Identity *IdentityService
	OAuth    *OAuthService
	User     *UserService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, mailer MailSender) *Services {
	hasher := password.NewHasher()
	tokens := NewTokenService(cfg)
	auth := NewAuthService(repos.User, repos.Session, tokens, hasher, cfg)
	identity := NewIdentityService(repos.User, hasher)

	return &Services{
		Auth:     auth,
		Token:    tokens,
		Identity: identity,
		OAuth:    NewOAuthService(cfg, identity),
		User:     NewUserService(repos.User, identity, auth, mailer),
	}
}
