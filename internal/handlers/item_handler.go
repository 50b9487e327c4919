package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/internal/repositories"
	"github.com/mkondo/giveaway/internal/services/view"
)

// ItemHandler serves listing CRUD. Reading is public; writes require a
// session, and updates are restricted to the owner or an admin.
type ItemHandler struct {
	items      repositories.ItemRepository
	types      repositories.ItemTypeRepository
	users      repositories.UserRepository
	reconciler *view.Reconciler
	logger     *zap.Logger
}

func NewItemHandler(
	items repositories.ItemRepository,
	types repositories.ItemTypeRepository,
	users repositories.UserRepository,
	logger *zap.Logger,
) *ItemHandler {
	return &ItemHandler{
		items:      items,
		types:      types,
		users:      users,
		reconciler: view.NewReconciler(schemaLookup{types}),
		logger:     logger,
	}
}

// schemaLookup adapts the item type repository to the view engine.
type schemaLookup struct {
	types repositories.ItemTypeRepository
}

func (l schemaLookup) ItemTypes(ctx context.Context) ([]*entities.ItemType, error) {
	return l.types.List(ctx)
}

// List returns items filtered by ?type_id=, ?owner_id= and ?keyword=.
// The type filter is given by ID and resolved to the stored type name;
// an unknown type ID simply matches nothing.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.ItemFilter{Keyword: q.Get("keyword")}

	if raw := q.Get("type_id"); raw != "" {
		typeID, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid type_id")
			return
		}
		t, err := h.types.GetByID(r.Context(), typeID)
		if err != nil {
			if errors.Is(err, entities.ErrNotFound) {
				writeJSON(w, http.StatusOK, []*entities.Item{})
				return
			}
			writeRepoError(w, h.logger, err)
			return
		}
		filter.TypeName = t.Name
	}

	if raw := q.Get("owner_id"); raw != "" {
		ownerID, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid owner_id")
			return
		}
		filter.OwnerID = ownerID
	}

	items, err := h.items.List(r.Context(), filter)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	item, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// View returns the item together with its rendered attribute rows. When
// the item's type no longer exists the rows fall back to raw keys and
// the render state says so.
func (h *ItemHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	item, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	itemView, err := h.reconciler.Display(r.Context(), item)
	if err != nil {
		h.logger.Error("failed to render item", zap.Int("item_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Item *entities.Item `json:"item"`
		View *view.ItemView `json:"view"`
	}{Item: item, View: itemView})
}

type itemRequest struct {
	TypeName    string            `json:"type_name"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Address     string            `json:"address"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	Attributes  entities.ValueBag `json:"attributes"`
	Status      string            `json:"status"`
}

// Create posts a new listing. Contact fields left empty fall back to the
// owner's profile. The attribute bag is stored as submitted; schema
// validation happens in the client before submission.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	var req itemRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := &entities.Item{
		TypeName:    req.TypeName,
		OwnerID:     sess.UserID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Attributes:  req.Attributes,
		Status:      entities.ItemStatusAvailable,
	}
	if err := item.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if item.Address == "" || item.Phone == "" || item.Email == "" {
		owner, err := h.users.GetByID(r.Context(), sess.UserID)
		if err != nil {
			writeRepoError(w, h.logger, err)
			return
		}
		if item.Address == "" {
			item.Address = owner.Address
		}
		if item.Phone == "" {
			item.Phone = owner.Phone
		}
		if item.Email == "" {
			item.Email = owner.Email
		}
	}

	created, err := h.items.Create(r.Context(), item)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("item created",
		zap.String("name", created.Name),
		zap.String("type", created.TypeName))
	writeJSON(w, http.StatusCreated, created)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	sess, _ := SessionFromContext(r.Context())
	if item.OwnerID != sess.UserID && sess.Role != entities.RoleAdmin {
		writeError(w, http.StatusForbidden, "only the owner or an admin can modify this item")
		return
	}

	var req itemRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Address = req.Address
	item.Attributes = req.Attributes
	if req.Status != "" {
		item.Status = req.Status
	}
	if err := item.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.items.Update(r.Context(), item)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("item updated", zap.Int("item_id", updated.ID))
	writeJSON(w, http.StatusOK, updated)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	sess, _ := SessionFromContext(r.Context())
	if item.OwnerID != sess.UserID && sess.Role != entities.RoleAdmin {
		writeError(w, http.StatusForbidden, "only the owner or an admin can delete this item")
		return
	}

	if err := h.items.Delete(r.Context(), id); err != nil {
		writeRepoError(w, h.logger, err)
		return
	}

	h.logger.Info("item deleted", zap.Int("item_id", id))
	w.WriteHeader(http.StatusNoContent)
}
