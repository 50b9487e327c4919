package entities

import (
	"fmt"
)

// AttributeKind identifies the value kind of an attribute definition.
// It determines the input widget, the validation rule, and the typed
// representation of a validated value.
type AttributeKind string

const (
	KindText   AttributeKind = "text"
	KindNumber AttributeKind = "number"
	KindDate   AttributeKind = "date"
	KindChoice AttributeKind = "select"
)

// IsValid reports whether k is one of the four supported kinds.
func (k AttributeKind) IsValid() bool {
	switch k {
	case KindText, KindNumber, KindDate, KindChoice:
		return true
	}
	return false
}

// AttributeDefinition describes one field of an item-type schema.
// Key is the stable storage identifier used in value bags; Label is the
// human-readable display name and may change freely without affecting
// stored data. Options is meaningful only for the choice kind.
type AttributeDefinition struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Kind     AttributeKind `json:"type"`
	Options  []string      `json:"options,omitempty"`
	Required bool          `json:"required,omitempty"`
}

// Validate checks that the definition is complete: key and label present,
// a known kind, and at least one option for the choice kind.
func (d *AttributeDefinition) Validate() error {
	if d.Key == "" {
		return fmt.Errorf("attribute key is required")
	}
	if d.Label == "" {
		return fmt.Errorf("attribute %q: label is required", d.Key)
	}
	if !d.Kind.IsValid() {
		return fmt.Errorf("attribute %q: unknown kind %q", d.Key, d.Kind)
	}
	if d.Kind == KindChoice && len(d.Options) == 0 {
		return fmt.Errorf("attribute %q: choice kind requires at least one option", d.Key)
	}
	return nil
}

// HasOption reports whether value is a member of the definition's current
// option set. Always false for non-choice kinds.
func (d *AttributeDefinition) HasOption(value string) bool {
	if d.Kind != KindChoice {
		return false
	}
	for _, opt := range d.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// String returns a short representation for logs and error messages.
// Format: key (label): kind
func (d *AttributeDefinition) String() string {
	return fmt.Sprintf("%s (%s): %s", d.Key, d.Label, d.Kind)
}
