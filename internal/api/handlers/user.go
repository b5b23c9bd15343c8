package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/J-A-Y2/Big-Money/internal/api/middleware"
	"github.com/J-A-Y2/Big-Money/internal/config"
	"github.com/J-A-Y2/Big-Money/internal/device"
	"github.com/J-A-Y2/Big-Money/internal/domain"
	"github.com/J-A-Y2/Big-Money/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	auth        *AuthHandler
	cfg         *config.Config
}

func NewUserHandler(userService *service.UserService, auth *AuthHandler, cfg *config.Config) *UserHandler {
	return &UserHandler{userService: userService, auth: auth, cfg: cfg}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Nickname  string `json:"nickname"`
	Birthdate string `json:"birthdate"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		http.Error(w, "Email, password, and name are required", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Nickname:  req.Nickname,
		Birthdate: req.Birthdate,
		Age:       req.Age,
		Gender:    req.Gender,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			http.Error(w, "Email already registered", http.StatusConflict)
			return
		}
		log.Printf("ERROR [UserHandler.Register] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(userResponse(user))
}

// VerifyEmail completes signup from the emailed link and signs the new
// account in by setting the auth cookies.
func (h *UserHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("signupVerifyToken")
	if token == "" {
		http.Error(w, "signupVerifyToken is required", http.StatusBadRequest)
		return
	}

	result, err := h.userService.VerifyEmail(r.Context(), token, clientIP(r), device.Parse(r.UserAgent()))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [UserHandler.VerifyEmail] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.auth.setAuthCookies(w, result.AccessToken, result.RefreshToken)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Nickname  *string `json:"nickname"`
	Birthdate *string `json:"birthdate"`
	Age       *int    `json:"age"`
	Gender    *string `json:"gender"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Update(r.Context(), userID, service.UpdateUserInput{
		Name:      req.Name,
		Nickname:  req.Nickname,
		Birthdate: req.Birthdate,
		Age:       req.Age,
		Gender:    req.Gender,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [UserHandler.Update] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userResponse(user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.userService.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [UserHandler.Delete] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.auth.clearAuthCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func userResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Email:    user.Email,
		Name:     user.Name,
		Nickname: user.Nickname,
	}
}
