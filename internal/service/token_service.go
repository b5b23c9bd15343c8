package service

import (
	"errors"
	"time"

	"github.com/J-A-Y2/Big-Money/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and verifies the two token kinds. Access tokens live for
// hours, refresh tokens for days; both carry the user id as subject and
// nothing else.
type TokenService struct {
	cfg *config.Config
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{cfg: cfg}
}

func (s *TokenService) GenerateAccessToken(userID string) (string, error) {
	return s.sign(userID, time.Duration(s.cfg.AccessTokenExpirationHours)*time.Hour)
}

func (s *TokenService) GenerateRefreshToken(userID string) (string, error) {
	return s.sign(userID, time.Duration(s.cfg.RefreshTokenExpirationDays)*24*time.Hour)
}

func (s *TokenService) sign(userID string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// DecodeToken verifies signature and expiry and returns the subject. Any
// verification failure comes back as ok=false, never an error: the caller
// treats an undecodable token as an invalid session, full stop.
func (s *TokenService) DecodeToken(tokenString string) (string, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
