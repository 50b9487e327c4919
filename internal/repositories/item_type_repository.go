package repositories

import (
	"context"

	"github.com/mkondo/giveaway/internal/entities"
)

// ItemTypeRepository defines the interface for item-type schema data access.
// It is the final arbiter of schema integrity: name uniqueness and
// per-schema attribute key uniqueness are enforced here at write time,
// not trusted to client-side key generation.
type ItemTypeRepository interface {
	// List retrieves all item types in stable ID order.
	List(ctx context.Context) ([]*entities.ItemType, error)

	// GetByID retrieves one item type, or entities.ErrNotFound.
	GetByID(ctx context.Context, id int) (*entities.ItemType, error)

	// GetByName retrieves one item type by its unique name, or
	// entities.ErrNotFound.
	GetByName(ctx context.Context, name string) (*entities.ItemType, error)

	// Create stores a new item type and returns it with its assigned ID.
	Create(ctx context.Context, t *entities.ItemType) (*entities.ItemType, error)

	// Update replaces the type's name and whole attribute list. Attributes
	// omitted from the new list are dropped from the schema; existing
	// items' bags are never touched.
	Update(ctx context.Context, t *entities.ItemType) (*entities.ItemType, error)

	// Delete removes the item type unconditionally. It does not cascade:
	// items referencing the type by name are left dangling.
	Delete(ctx context.Context, id int) error
}
