package handlers

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/internal/repositories"
	"github.com/mkondo/giveaway/pkg/cache/memorycache"
)

// Mock UserRepository
type mockUserRepository struct {
	listFunc          func(ctx context.Context, filter repositories.UserFilter) ([]*entities.User, error)
	getByIDFunc       func(ctx context.Context, id int) (*entities.User, error)
	getByLoginFunc    func(ctx context.Context, login string) (*entities.User, error)
	createFunc        func(ctx context.Context, user *entities.User) (*entities.User, error)
	updateProfileFunc func(ctx context.Context, id int, phone, address string) error
	updateStatusFunc  func(ctx context.Context, id int, status string) error
	updateRoleFunc    func(ctx context.Context, id int, role string) error
	deleteFunc        func(ctx context.Context, id int) error
}

func (m *mockUserRepository) List(ctx context.Context, filter repositories.UserFilter) ([]*entities.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*entities.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, entities.ErrNotFound
}

func (m *mockUserRepository) GetByLogin(ctx context.Context, login string) (*entities.User, error) {
	if m.getByLoginFunc != nil {
		return m.getByLoginFunc(ctx, login)
	}
	return nil, entities.ErrNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = 1
	return user, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id int, phone, address string) error {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, id, phone, address)
	}
	return nil
}

func (m *mockUserRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, id int, role string) error {
	if m.updateRoleFunc != nil {
		return m.updateRoleFunc(ctx, id, role)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// Mock ItemTypeRepository
type mockItemTypeRepository struct {
	listFunc      func(ctx context.Context) ([]*entities.ItemType, error)
	getByIDFunc   func(ctx context.Context, id int) (*entities.ItemType, error)
	getByNameFunc func(ctx context.Context, name string) (*entities.ItemType, error)
	createFunc    func(ctx context.Context, t *entities.ItemType) (*entities.ItemType, error)
	updateFunc    func(ctx context.Context, t *entities.ItemType) (*entities.ItemType, error)
	deleteFunc    func(ctx context.Context, id int) error
}

func (m *mockItemTypeRepository) List(ctx context.Context) ([]*entities.ItemType, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockItemTypeRepository) GetByID(ctx context.Context, id int) (*entities.ItemType, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, entities.ErrNotFound
}

func (m *mockItemTypeRepository) GetByName(ctx context.Context, name string) (*entities.ItemType, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, entities.ErrNotFound
}

func (m *mockItemTypeRepository) Create(ctx context.Context, t *entities.ItemType) (*entities.ItemType, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, t)
	}
	t.ID = 1
	return t, nil
}

func (m *mockItemTypeRepository) Update(ctx context.Context, t *entities.ItemType) (*entities.ItemType, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, t)
	}
	return t, nil
}

func (m *mockItemTypeRepository) Delete(ctx context.Context, id int) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// Mock ItemRepository
type mockItemRepository struct {
	listFunc    func(ctx context.Context, filter repositories.ItemFilter) ([]*entities.Item, error)
	getByIDFunc func(ctx context.Context, id int) (*entities.Item, error)
	createFunc  func(ctx context.Context, item *entities.Item) (*entities.Item, error)
	updateFunc  func(ctx context.Context, item *entities.Item) (*entities.Item, error)
	deleteFunc  func(ctx context.Context, id int) error
}

func (m *mockItemRepository) List(ctx context.Context, filter repositories.ItemFilter) ([]*entities.Item, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockItemRepository) GetByID(ctx context.Context, id int) (*entities.Item, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, entities.ErrNotFound
}

func (m *mockItemRepository) Create(ctx context.Context, item *entities.Item) (*entities.Item, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, item)
	}
	item.ID = 1
	return item, nil
}

func (m *mockItemRepository) Update(ctx context.Context, item *entities.Item) (*entities.Item, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, item)
	}
	return item, nil
}

func (m *mockItemRepository) Delete(ctx context.Context, id int) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// newTestSessionStore returns a session store backed by a small in-memory
// cache, plus a token already bound to the given session.
func newTestSessionStore(t *testing.T, sess *Session) (*SessionStore, string) {
	t.Helper()
	c, err := memorycache.New(&memorycache.Config{
		MaxSizeBytes: 1 << 20,
		DefaultTTL:   time.Minute,
	})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	store := NewSessionStore(c, time.Minute)
	token := ""
	if sess != nil {
		token, err = store.Create(context.Background(), sess)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
	}
	return store, token
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
