package entities

import (
	"errors"
	"fmt"
)

// ErrSchemaNameEmpty is returned when an item type is created or updated
// with a blank name. Rejected before any network or storage call.
var ErrSchemaNameEmpty = errors.New("item type name is required")

// ErrNotFound is the generic missing-record error mapped from storage.
var ErrNotFound = errors.New("not found")

// ErrItemNameEmpty is returned when an item is submitted without a name.
var ErrItemNameEmpty = errors.New("item name is required")

// ErrItemTypeMissing is returned when an item carries neither a type ID
// nor a type name.
var ErrItemTypeMissing = errors.New("item type is required")

// DuplicateAttributeKeyError reports a per-schema attribute key collision.
// The store enforces this at write time; client-side key generation is
// best effort only.
type DuplicateAttributeKeyError struct {
	TypeName string
	Key      string
}

func (e *DuplicateAttributeKeyError) Error() string {
	return fmt.Sprintf("item type %q: duplicate attribute key: %s", e.TypeName, e.Key)
}

// NameConflictError reports a unique-name collision: an item type name
// already taken, or a username or email already registered.
type NameConflictError struct {
	Name string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("name already in use: %s", e.Name)
}
