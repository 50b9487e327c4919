// Package validation decides whether an attribute value bag may be
// submitted against an item type's current schema, and whether a schema
// itself is well formed. It runs entirely client side, before any network
// call, and never mutates the bag it inspects.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mkondo/giveaway/internal/entities"
)

// Reason classifies a bag validation failure.
type Reason string

const (
	ReasonRequiredMissing Reason = "required_missing"
	ReasonInvalidNumber   Reason = "invalid_number"
	ReasonInvalidDate     Reason = "invalid_date"
	ReasonInvalidChoice   Reason = "invalid_choice"
)

// Error reports the first violated attribute in schema order. Validation
// is fail fast: one error per pass, matching the one-alert-at-a-time
// submission flow.
type Error struct {
	Key    string
	Label  string
	Reason Reason
}

func (e *Error) Error() string {
	switch e.Reason {
	case ReasonRequiredMissing:
		return fmt.Sprintf("required field missing: %s", e.Label)
	case ReasonInvalidNumber:
		return fmt.Sprintf("%s must be a number", e.Label)
	case ReasonInvalidDate:
		return fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", e.Label)
	case ReasonInvalidChoice:
		return fmt.Sprintf("%s is not one of the allowed options", e.Label)
	}
	return fmt.Sprintf("invalid value for %s", e.Label)
}

// ValidateBag checks bag against the type's attribute list, in schema
// order. Required attributes need a non-empty value; present values must
// match their declared kind; choice values must be members of the current
// option set. Keys in the bag that the schema does not know are passed
// through untouched so that drifted legacy data keeps round-tripping.
func ValidateBag(t *entities.ItemType, bag entities.ValueBag) error {
	for _, def := range t.Attributes {
		raw, present := bag.Get(def.Key)

		if !present {
			if def.Required {
				return &Error{Key: def.Key, Label: def.Label, Reason: ReasonRequiredMissing}
			}
			continue
		}

		switch def.Kind {
		case entities.KindNumber:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
				return &Error{Key: def.Key, Label: def.Label, Reason: ReasonInvalidNumber}
			}
		case entities.KindDate:
			if _, err := time.Parse(entities.DateLayout, raw); err != nil {
				return &Error{Key: def.Key, Label: def.Label, Reason: ReasonInvalidDate}
			}
		case entities.KindChoice:
			if !def.HasOption(raw) {
				return &Error{Key: def.Key, Label: def.Label, Reason: ReasonInvalidChoice}
			}
		}
	}
	return nil
}

// ValidateSchema checks an item type for the administrative create/update
// path: non-empty name, complete attribute definitions, unique keys.
func ValidateSchema(t *entities.ItemType) error {
	return t.Validate()
}
