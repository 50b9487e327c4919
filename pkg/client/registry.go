package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mkondo/giveaway/internal/entities"
	"github.com/mkondo/giveaway/internal/services/validation"
)

// SchemaRegistry manages item type schemas through the API. It never
// caches: every lookup fetches the current list, so renders and
// validations always observe the latest admin edits.
type SchemaRegistry struct {
	client *Client
}

// NewSchemaRegistry creates a registry over an existing client. Schema
// writes require the client's token to belong to an admin.
func NewSchemaRegistry(c *Client) *SchemaRegistry {
	return &SchemaRegistry{client: c}
}

// ItemTypes returns the current schema list. This satisfies the schema
// lookup contract of the view engine, so a Reconciler can render
// directly off the registry.
func (r *SchemaRegistry) ItemTypes(ctx context.Context) ([]*entities.ItemType, error) {
	var types []*entities.ItemType
	if err := r.client.do(ctx, http.MethodGet, "/types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// Get returns the schema with the given name, or ErrNotFound.
func (r *SchemaRegistry) Get(ctx context.Context, name string) (*entities.ItemType, error) {
	types, err := r.ItemTypes(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, entities.ErrNotFound
}

// Create submits a new schema. Attributes added without a key get a
// generated one, and the schema is validated locally, so malformed
// definitions never reach the wire.
func (r *SchemaRegistry) Create(ctx context.Context, t *entities.ItemType) (*entities.ItemType, error) {
	fillAttributeKeys(t)
	if err := validation.ValidateSchema(t); err != nil {
		return nil, err
	}
	var created entities.ItemType
	if err := r.client.do(ctx, http.MethodPost, "/types", typePayload(t), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the schema's name and entire attribute list. There is
// no partial edit: the submitted list becomes the schema.
func (r *SchemaRegistry) Update(ctx context.Context, t *entities.ItemType) (*entities.ItemType, error) {
	fillAttributeKeys(t)
	if err := validation.ValidateSchema(t); err != nil {
		return nil, err
	}
	var updated entities.ItemType
	path := "/types/" + strconv.Itoa(t.ID)
	if err := r.client.do(ctx, http.MethodPut, path, typePayload(t), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a schema. Existing items keep their type name and
// degrade to raw-key rendering until a schema with that name returns.
func (r *SchemaRegistry) Delete(ctx context.Context, id int) error {
	return r.client.do(ctx, http.MethodDelete, "/types/"+strconv.Itoa(id), nil, nil)
}

// ValidateItem checks the item's attribute bag against the current
// schema for its type, fetching the schema fresh. An item whose type no
// longer exists passes: there is no schema to violate.
func (r *SchemaRegistry) ValidateItem(ctx context.Context, item *entities.Item) error {
	types, err := r.ItemTypes(ctx)
	if err != nil {
		return err
	}
	for _, t := range types {
		if t.Name == item.TypeName {
			return validation.ValidateBag(t, item.Attributes)
		}
	}
	return nil
}

// fillAttributeKeys assigns a generated key to every attribute submitted
// without one. Generation is best-effort uniqueness; the store rejects
// collisions at write time.
func fillAttributeKeys(t *entities.ItemType) {
	for _, def := range t.Attributes {
		if def.Key == "" {
			def.Key = entities.GenerateAttributeKey()
		}
	}
}

func typePayload(t *entities.ItemType) map[string]interface{} {
	return map[string]interface{}{
		"name":       t.Name,
		"attributes": t.Attributes,
	}
}
