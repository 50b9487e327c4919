package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/internal/repositories"
)

// UserHandler serves user profile reads and updates.
// All operations require the caller to be the user themselves or an admin.
type UserHandler struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

func NewUserHandler(users repositories.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

// canAccessUser reports whether the session may read or modify the user.
func canAccessUser(sess *Session, userID int) bool {
	return sess.UserID == userID || sess.Role == entities.RoleAdmin
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	sess, _ := SessionFromContext(r.Context())
	if !canAccessUser(sess, id) {
		writeError(w, http.StatusForbidden, "access denied")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	sess, _ := SessionFromContext(r.Context())
	if !canAccessUser(sess, id) {
		writeError(w, http.StatusForbidden, "access denied")
		return
	}

	var req updateProfileRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.users.UpdateProfile(r.Context(), id, req.Phone, req.Address); err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
