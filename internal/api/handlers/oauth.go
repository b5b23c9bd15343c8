package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/J-A-Y2/Big-Money/internal/config"
	"github.com/J-A-Y2/Big-Money/internal/device"
	"github.com/J-A-Y2/Big-Money/internal/domain"
	"github.com/J-A-Y2/Big-Money/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const oauthStateCookie = "oauth_state"

type OAuthHandler struct {
	oauthService *service.OAuthService
	authService  *service.AuthService
	auth         *AuthHandler
	cfg          *config.Config
}

func NewOAuthHandler(oauthService *service.OAuthService, authService *service.AuthService, auth *AuthHandler, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		authService:  authService,
		auth:         auth,
		cfg:          cfg,
	}
}

// Redirect starts the provider handshake: random state in a short-lived
// cookie, then off to the provider's consent page.
func (h *OAuthHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	provider := domain.AuthProvider(chi.URLParam(r, "provider"))

	state := uuid.New().String()
	authURL, err := h.oauthService.AuthCodeURL(provider, state)
	if err != nil {
		http.Error(w, "Unknown provider", http.StatusNotFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   h.cfg.Environment == "production",
	})

	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// Callback finishes the handshake: state check, code exchange, profile
// resolution, then a normal session login with cookies.
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	provider := domain.AuthProvider(chi.URLParam(r, "provider"))

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid oauth state", http.StatusUnauthorized)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	user, err := h.oauthService.HandleCallback(r.Context(), provider, code)
	if err != nil {
		if errors.Is(err, service.ErrUnknownProvider) {
			http.Error(w, "Unknown provider", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [OAuthHandler.Callback] %s callback failed: %v", provider, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		UserID: user.ID,
		IP:     clientIP(r),
		Device: device.Parse(r.UserAgent()),
	})
	if err != nil {
		log.Printf("ERROR [OAuthHandler.Callback] login for %s failed: %v", user.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.auth.setAuthCookies(w, result.AccessToken, result.RefreshToken)
	http.Redirect(w, r, "/", http.StatusFound)
}
