package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/J-A-Y2/Big-Money/internal/api/middleware"
	"github.com/J-A-Y2/Big-Money/internal/config"
	"github.com/J-A-Y2/Big-Money/internal/device"
	"github.com/J-A-Y2/Big-Money/internal/domain"
	"github.com/J-A-Y2/Big-Money/internal/service"
	"github.com/J-A-Y2/Big-Money/internal/timeutil"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CheckPasswordRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.authService.ValidateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		UserID: user.ID,
		IP:     clientIP(r),
		Device: device.Parse(r.UserAgent()),
	})
	if err != nil {
		log.Printf("ERROR [AuthHandler.Login] login for %s failed: %v", user.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.setAuthCookies(w, result.AccessToken, result.RefreshToken)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Refresh trades the refreshToken cookie for a fresh access token. Any
// failure -- bad signature, missing session, dependency error -- clears both
// cookies so the client falls back to a full login.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refreshToken")
	if err != nil {
		h.clearAuthCookies(w)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.authService.Refresh(r.Context(), service.RefreshInput{
		RefreshToken: cookie.Value,
		IP:           clientIP(r),
		Device:       device.Parse(r.UserAgent()),
	})
	if err != nil {
		h.clearAuthCookies(w)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	access := h.authCookie("accessToken", accessToken)
	access.Expires = timeutil.HoursFromNow(h.cfg.AccessTokenExpirationHours)
	http.SetCookie(w, access)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		log.Printf("ERROR [AuthHandler.Logout] logout for %s failed: %v", userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.clearAuthCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CheckPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		http.Error(w, "Password is required", http.StatusBadRequest)
		return
	}

	if err := h.authService.CheckPassword(r.Context(), userID, req.Password); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Status lets the client probe whether its access token is still valid.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(true)
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	access := h.authCookie("accessToken", accessToken)
	access.Expires = timeutil.HoursFromNow(h.cfg.AccessTokenExpirationHours)
	http.SetCookie(w, access)

	refresh := h.authCookie("refreshToken", refreshToken)
	refresh.Expires = timeutil.DaysFromNow(h.cfg.RefreshTokenExpirationDays)
	http.SetCookie(w, refresh)
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
}

func (h *AuthHandler) authCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.Environment == "production",
		SameSite: http.SameSiteStrictMode,
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
