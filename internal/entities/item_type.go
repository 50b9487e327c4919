package entities

import (
	"encoding/json"
	"fmt"
)

// ItemType is an administrator-defined category of items. Attributes is an
// ordered list: the order is the display and edit order everywhere.
// Name doubles as the soft reference key carried by items (type_name), so
// renaming or deleting a type can leave dangling references; that drift is
// handled at render time, never by mutating stored items.
type ItemType struct {
	ID         int                    `json:"id"`
	Name       string                 `json:"name"`
	Attributes []*AttributeDefinition `json:"attributes"`
}

// GetAttribute returns the definition for the given storage key, or nil.
func (t *ItemType) GetAttribute(key string) *AttributeDefinition {
	for _, attr := range t.Attributes {
		if attr.Key == key {
			return attr
		}
	}
	return nil
}

// Validate checks the type for well-formedness: non-empty name, every
// attribute complete, and no duplicate attribute keys.
func (t *ItemType) Validate() error {
	if t.Name == "" {
		return ErrSchemaNameEmpty
	}
	seen := make(map[string]bool, len(t.Attributes))
	for _, attr := range t.Attributes {
		if err := attr.Validate(); err != nil {
			return fmt.Errorf("item type %q: %w", t.Name, err)
		}
		if seen[attr.Key] {
			return &DuplicateAttributeKeyError{TypeName: t.Name, Key: attr.Key}
		}
		seen[attr.Key] = true
	}
	return nil
}

// MarshalAttributes serializes the attribute list to a JSON string for the
// storage column.
func (t *ItemType) MarshalAttributes() (string, error) {
	data, err := json.Marshal(t.Attributes)
	if err != nil {
		return "", fmt.Errorf("failed to marshal attributes: %w", err)
	}
	return string(data), nil
}

// UnmarshalAttributes deserializes a JSON string from the storage column
// into the attribute list.
func (t *ItemType) UnmarshalAttributes(data string) error {
	if data == "" {
		t.Attributes = nil
		return nil
	}
	if err := json.Unmarshal([]byte(data), &t.Attributes); err != nil {
		return fmt.Errorf("failed to unmarshal attributes: %w", err)
	}
	return nil
}
