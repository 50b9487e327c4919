package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/internal/repositories"
	"github.com/mkondo/giveaway/internal/services/validation"
)

// TypeHandler serves item type (schema) management. Reading is public;
// creating, replacing and deleting require admin.
type TypeHandler struct {
	types  repositories.ItemTypeRepository
	logger *zap.Logger
}

func NewTypeHandler(types repositories.ItemTypeRepository, logger *zap.Logger) *TypeHandler {
	return &TypeHandler{types: types, logger: logger}
}

func (h *TypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.types.List(r.Context())
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *TypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid type id")
		return
	}
	t, err := h.types.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type typeRequest struct {
	Name       string                          `json:"name"`
	Attributes []*entities.AttributeDefinition `json:"attributes"`
}

func (h *TypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req typeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t := &entities.ItemType{Name: req.Name, Attributes: req.Attributes}
	if err := validation.ValidateSchema(t); err != nil {
		writeSchemaError(w, err)
		return
	}

	created, err := h.types.Create(r.Context(), t)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("item type created", zap.String("name", created.Name))
	writeJSON(w, http.StatusCreated, created)
}

// Update replaces the type's name and its entire attribute list. Partial
// schema edits do not exist: the submitted list is the new schema.
func (h *TypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid type id")
		return
	}

	var req typeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t := &entities.ItemType{ID: id, Name: req.Name, Attributes: req.Attributes}
	if err := validation.ValidateSchema(t); err != nil {
		writeSchemaError(w, err)
		return
	}

	updated, err := h.types.Update(r.Context(), t)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("item type updated", zap.String("name", updated.Name))
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes the type. Items referencing it by name keep their data
// and render from raw keys until the type is recreated.
func (h *TypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid type id")
		return
	}

	if err := h.types.Delete(r.Context(), id); err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("item type deleted", zap.Int("type_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// writeSchemaError distinguishes duplicate-key conflicts (409) from plain
// malformed schemas (400).
func writeSchemaError(w http.ResponseWriter, err error) {
	var dup *entities.DuplicateAttributeKeyError
	if errors.As(err, &dup) {
		writeError(w, http.StatusConflict, dup.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
