package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/internal/repositories"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	users    repositories.UserRepository
	sessions *SessionStore
	logger   *zap.Logger
}

func NewAuthHandler(users repositories.UserRepository, sessions *SessionStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Register creates a new account in pending status. Pending accounts
// cannot log in until an admin approves them.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "username, password and email are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := h.users.Create(r.Context(), &entities.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         entities.RoleUser,
		Status:       entities.UserStatusPending,
	})
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("user registered", zap.String("username", user.Username))
	writeJSON(w, http.StatusCreated, user)
}

// Login authenticates by username or email. Only approved accounts get
// a token; pending and rejected accounts are refused with the reason.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.GetByLogin(r.Context(), req.Login)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeRepoError(w, h.logger, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	switch user.Status {
	case entities.UserStatusApproved:
	case entities.UserStatusPending:
		writeError(w, http.StatusForbidden, "account is pending approval")
		return
	default:
		writeError(w, http.StatusForbidden, "account has been rejected")
		return
	}

	token, err := h.sessions.Create(r.Context(), &Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("user logged in", zap.String("username", user.Username))
	writeJSON(w, http.StatusOK, loginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}
