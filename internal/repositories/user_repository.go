package repositories

import (
	"context"

	"github.com/mkondo/giveaway/internal/entities"
)

// UserFilter narrows a user listing. Zero values mean "no filter".
type UserFilter struct {
	Status  string
	Keyword string // matches username, email or phone, case-insensitive
}

// UserRepository defines the interface for user account data access.
type UserRepository interface {
	// List retrieves users matching the filter in ID order.
	List(ctx context.Context, filter UserFilter) ([]*entities.User, error)

	// GetByID retrieves one user, or entities.ErrNotFound.
	GetByID(ctx context.Context, id int) (*entities.User, error)

	// GetByLogin retrieves a user whose username or email matches login,
	// or entities.ErrNotFound.
	GetByLogin(ctx context.Context, login string) (*entities.User, error)

	// Create stores a new user and returns it with its assigned ID.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	// UpdateProfile updates the user's phone and address.
	UpdateProfile(ctx context.Context, id int, phone, address string) error

	// UpdateStatus sets the user's approval status.
	UpdateStatus(ctx context.Context, id int, status string) error

	// UpdateRole sets the user's role.
	UpdateRole(ctx context.Context, id int, role string) error

	// Delete removes the user; their items go with them (enforced by the
	// schema's cascade).
	Delete(ctx context.Context, id int) error
}
