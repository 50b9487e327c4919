package repositories

import (
	"context"

	"github.com/mkondo/giveaway/internal/entities"
)

// ItemFilter narrows an item listing. Zero values mean "no filter".
type ItemFilter struct {
	TypeName string
	OwnerID  int
	Keyword  string // matches name or description, case-insensitive
}

// ItemRepository defines the interface for item data access. The
// attributes column is opaque here: any value bag is accepted at rest,
// and bags are replaced wholesale on update.
type ItemRepository interface {
	// List retrieves items matching the filter, newest first, with the
	// owner's username joined in.
	List(ctx context.Context, filter ItemFilter) ([]*entities.Item, error)

	// GetByID retrieves one item, or entities.ErrNotFound.
	GetByID(ctx context.Context, id int) (*entities.Item, error)

	// Create stores a new item and returns it with its assigned ID.
	Create(ctx context.Context, item *entities.Item) (*entities.Item, error)

	// Update replaces the item's editable fields and its whole attribute
	// bag.
	Update(ctx context.Context, item *entities.Item) (*entities.Item, error)

	// Delete removes the item, or entities.ErrNotFound.
	Delete(ctx context.Context, id int) error
}
