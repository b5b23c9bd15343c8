package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/J-A-Y2/Big-Money/internal/config"
	"github.com/J-A-Y2/Big-Money/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/kakao"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	kakaoUserInfoURL  = "https://kapi.kakao.com/v2/me"
)

var ErrUnknownProvider = fmt.Errorf("unknown oauth provider")

// OAuthService drives the redirect handshake for the external identity
// providers and maps their userinfo payloads into canonical profiles.
type OAuthService struct {
	identity *IdentityService
	configs  map[domain.AuthProvider]*oauth2.Config
}

func NewOAuthService(cfg *config.Config, identity *IdentityService) *OAuthService {
	return &OAuthService{
		identity: identity,
		configs: map[domain.AuthProvider]*oauth2.Config{
			domain.ProviderGoogle: {
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.GoogleCallbackURL,
				Scopes:       []string{"email", "profile"},
				Endpoint:     google.Endpoint,
			},
			domain.ProviderKakao: {
				ClientID:     cfg.KakaoClientID,
				ClientSecret: cfg.KakaoClientSecret,
				RedirectURL:  cfg.KakaoCallbackURL,
				Scopes:       []string{"account_email", "profile_nickname"},
				Endpoint:     kakao.Endpoint,
			},
		},
	}
}

// AuthCodeURL returns the provider's consent page URL carrying the CSRF
// state the handler stashed in a short-lived cookie.
func (s *OAuthService) AuthCodeURL(provider domain.AuthProvider, state string) (string, error) {
	cfg, ok := s.configs[provider]
	if !ok {
		return "", ErrUnknownProvider
	}
	return cfg.AuthCodeURL(state), nil
}

// HandleCallback exchanges the authorization code, fetches the provider's
// userinfo document, and resolves it to a canonical account.
func (s *OAuthService) HandleCallback(ctx context.Context, provider domain.AuthProvider, code string) (*domain.User, error) {
	cfg, ok := s.configs[provider]
	if !ok {
		return nil, ErrUnknownProvider
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange %s code: %w", provider, err)
	}

	raw, err := s.fetchUserInfo(ctx, cfg, token, provider)
	if err != nil {
		return nil, err
	}

	profile, err := MapProviderProfile(provider, raw)
	if err != nil {
		return nil, err
	}

	return s.identity.Resolve(ctx, profile)
}

func (s *OAuthService) fetchUserInfo(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token, provider domain.AuthProvider) ([]byte, error) {
	url := googleUserInfoURL
	if provider == domain.ProviderKakao {
		url = kakaoUserInfoURL
	}

	resp, err := cfg.Client(ctx, token).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s userinfo: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s userinfo: status %d", provider, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// MapProviderProfile is the per-provider normalization step: each branch
// knows one payload shape and nothing else does.
func MapProviderProfile(provider domain.AuthProvider, raw []byte) (Profile, error) {
	switch provider {
	case domain.ProviderGoogle:
		return mapGoogleProfile(raw)
	case domain.ProviderKakao:
		return mapKakaoProfile(raw)
	default:
		return Profile{}, ErrUnknownProvider
	}
}

func mapGoogleProfile(raw []byte) (Profile, error) {
	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Profile{}, err
	}
	if payload.Email == "" {
		return Profile{}, domain.ErrEmailClaimMissing
	}

	return Profile{
		Provider:    domain.ProviderGoogle,
		SubjectID:   payload.ID,
		Email:       payload.Email,
		DisplayName: payload.Name,
	}, nil
}

func mapKakaoProfile(raw []byte) (Profile, error) {
	var payload struct {
		ID         int64 `json:"id"`
		Properties struct {
			Nickname string `json:"nickname"`
		} `json:"properties"`
		KakaoAccount struct {
			Email string `json:"email"`
		} `json:"kakao_account"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Profile{}, err
	}
	if payload.KakaoAccount.Email == "" {
		return Profile{}, domain.ErrEmailClaimMissing
	}

	return Profile{
		Provider:    domain.ProviderKakao,
		SubjectID:   strconv.FormatInt(payload.ID, 10),
		Email:       payload.KakaoAccount.Email,
		DisplayName: payload.Properties.Nickname,
	}, nil
}
