// Package view reconciles an item's attribute value bag against the
// current item-type schema at render time. The schema in effect when the
// item was created is irrelevant: every render asks the schema source for
// the current list, and drift between bag and schema is absorbed here
// rather than by migrating stored data.
package view

import (
	"context"
	"fmt"

	"github.com/mkondo/giveaway/internal/entities"
)

// SchemaLookup is the capability the engine needs to resolve an item's
// type name. Components receive it by injection instead of reaching for
// an ambient registry, so a test or a batch job can supply its own
// snapshot.
type SchemaLookup interface {
	// ItemTypes returns the current schema list. Implementations must not
	// serve stale caches: the engine's contract is that every render
	// observes the store's current state.
	ItemTypes(ctx context.Context) ([]*entities.ItemType, error)
}

// RenderState is the terminal state of one render decision.
type RenderState string

const (
	// StateSchemaResolved means the item's type name matched a current
	// schema and rendering is schema-driven.
	StateSchemaResolved RenderState = "schema_resolved"
	// StateSchemaMissing means no current schema matches the item's type
	// name (deleted or renamed after the item was created); rendering
	// degrades to raw key/value pairs so data is never hidden.
	StateSchemaMissing RenderState = "schema_missing"
)

// Row is one displayed attribute. In the resolved state Label comes from
// the schema; in the missing state it is the raw bag key and Definition
// is nil.
type Row struct {
	Key        string                        `json:"key"`
	Label      string                        `json:"label"`
	Value      string                        `json:"value"`
	Definition *entities.AttributeDefinition `json:"definition,omitempty"`
}

// ItemView is the read-only rendering of an item's bag.
type ItemView struct {
	State RenderState        `json:"state"`
	Type  *entities.ItemType `json:"type,omitempty"` // nil when State is StateSchemaMissing
	Rows  []Row              `json:"rows"`
}

// Field is one edit-form input, seeded from the bag or empty.
type Field struct {
	Definition *entities.AttributeDefinition `json:"definition"`
	Value      string                        `json:"value"`
}

// EditForm is the pre-filled editing rendering of an item's bag. In the
// missing-schema state there are no typed fields to offer; callers fall
// back to the item's base fields only.
type EditForm struct {
	State  RenderState        `json:"state"`
	Type   *entities.ItemType `json:"type,omitempty"`
	Fields []Field            `json:"fields"`
}

// Reconciler renders items against the current schema list.
type Reconciler struct {
	lookup SchemaLookup
}

// NewReconciler creates a Reconciler backed by the given schema source.
func NewReconciler(lookup SchemaLookup) *Reconciler {
	return &Reconciler{lookup: lookup}
}

// resolve fetches the current schema list and matches the item's type
// name. A nil result with nil error is the schema-missing state; errors
// are transport failures and are surfaced as-is.
func (r *Reconciler) resolve(ctx context.Context, typeName string) (*entities.ItemType, error) {
	types, err := r.lookup.ItemTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current schemas: %w", err)
	}
	for _, t := range types {
		if t.Name == typeName {
			return t, nil
		}
	}
	return nil, nil
}

// Display renders the item's bag for read-only display.
//
// Resolved path: schema-order rows, one per attribute with a non-empty
// bag value; attributes without a value are omitted rather than rendered
// empty. A stray bag key from a removed attribute is invisible here but
// is never deleted: a schema rollback would resurrect it.
//
// Missing path: every raw bag key is rendered as its own row, in sorted
// key order, with no labels and no typed definitions.
func (r *Reconciler) Display(ctx context.Context, item *entities.Item) (*ItemView, error) {
	typ, err := r.resolve(ctx, item.TypeName)
	if err != nil {
		return nil, err
	}

	if typ == nil {
		rows := make([]Row, 0, len(item.Attributes))
		for _, key := range item.Attributes.Keys() {
			value, ok := item.Attributes.Get(key)
			if !ok {
				continue
			}
			rows = append(rows, Row{Key: key, Label: key, Value: value})
		}
		return &ItemView{State: StateSchemaMissing, Rows: rows}, nil
	}

	rows := make([]Row, 0, len(typ.Attributes))
	for _, def := range typ.Attributes {
		value, ok := item.Attributes.Get(def.Key)
		if !ok {
			continue
		}
		rows = append(rows, Row{Key: def.Key, Label: def.Label, Value: value, Definition: def})
	}
	return &ItemView{State: StateSchemaResolved, Type: typ, Rows: rows}, nil
}

// EditForm renders the item's bag for editing. Every attribute of the
// current schema gets a field, seeded with the bag value or empty: an
// attribute added since the item was created shows up as an empty input,
// and an attribute removed since creation simply has no field. The stored
// bag is never mutated or pruned by rendering.
func (r *Reconciler) EditForm(ctx context.Context, item *entities.Item) (*EditForm, error) {
	typ, err := r.resolve(ctx, item.TypeName)
	if err != nil {
		return nil, err
	}

	if typ == nil {
		return &EditForm{State: StateSchemaMissing}, nil
	}

	fields := make([]Field, 0, len(typ.Attributes))
	for _, def := range typ.Attributes {
		value := item.Attributes[def.Key]
		fields = append(fields, Field{Definition: def, Value: value})
	}
	return &EditForm{State: StateSchemaResolved, Type: typ, Fields: fields}, nil
}
