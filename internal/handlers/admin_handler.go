package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/internal/repositories"
)

// AdminHandler serves user administration: approval, role changes and removal.
// The router mounts every route here behind RequireAdmin.
type AdminHandler struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

func NewAdminHandler(users repositories.UserRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, logger: logger}
}

// ListUsers returns users filtered by ?status= and ?keyword=.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := repositories.UserFilter{
		Status:  r.URL.Query().Get("status"),
		Keyword: r.URL.Query().Get("keyword"),
	}
	users, err := h.users.List(r.Context(), filter)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type approveRequest struct {
	Action string `json:"action"`
}

// Approve resolves a pending registration. The action field selects
// "approve" or "reject".
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req approveRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var status string
	switch req.Action {
	case "approve":
		status = entities.UserStatusApproved
	case "reject":
		status = entities.UserStatusRejected
	default:
		writeError(w, http.StatusBadRequest, "action must be approve or reject")
		return
	}

	if err := h.users.UpdateStatus(r.Context(), id, status); err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("user status updated",
		zap.Int("user_id", id),
		zap.String("status", status))
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *AdminHandler) Promote(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, entities.RoleAdmin)
}

func (h *AdminHandler) Demote(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, entities.RoleUser)
}

func (h *AdminHandler) setRole(w http.ResponseWriter, r *http.Request, role string) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}
	// The built-in admin account keeps its role permanently.
	if user.Username == entities.AdminUsername {
		writeError(w, http.StatusForbidden, "the built-in admin account cannot be modified")
		return
	}

	if err := h.users.UpdateRole(r.Context(), id, role); err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("user role updated",
		zap.Int("user_id", id),
		zap.String("role", role))
	writeJSON(w, http.StatusOK, map[string]string{"role": role})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}
	if user.Username == entities.AdminUsername {
		writeError(w, http.StatusForbidden, "the built-in admin account cannot be deleted")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("user deleted", zap.Int("user_id", id))
	w.WriteHeader(http.StatusNoContent)
}
