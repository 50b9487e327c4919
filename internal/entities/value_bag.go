package entities

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// DateLayout is the calendar date format used for date-kind values.
const DateLayout = "2006-01-02"

// ValueBag is the per-item, schema-less mapping of attribute key to raw
// value. It carries no kind information and no guarantee of matching any
// schema version; the storage layer accepts any bag, and all integrity
// enforcement happens before submission.
type ValueBag map[string]string

// Get returns the raw value for key and whether a non-empty value exists.
func (b ValueBag) Get(key string) (string, bool) {
	v, ok := b[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Keys returns the bag's keys in sorted order. Map iteration is not
// deterministic and degraded rendering needs a stable order.
func (b ValueBag) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of the bag. Engines that must never mutate a stored
// bag operate on clones.
func (b ValueBag) Clone() ValueBag {
	out := make(ValueBag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// UnmarshalJSON accepts any JSON object and coerces scalar values to
// strings. Legacy rows may hold numbers or booleans where the current
// schema expects text; coercion keeps that data visible instead of
// failing the whole item.
func (b *ValueBag) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal value bag: %w", err)
	}
	out := make(ValueBag, len(raw))
	for k, v := range raw {
		out[k] = coerceScalar(v)
	}
	*b = out
	return nil
}

// coerceScalar renders one JSON value as a string. Strings are unquoted,
// numbers keep their original formatting, everything else is kept as its
// raw JSON text.
func coerceScalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// MarshalValueBag serializes a bag to the JSON string stored in the
// attributes column.
func MarshalValueBag(b ValueBag) (string, error) {
	if b == nil {
		b = ValueBag{}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("failed to marshal value bag: %w", err)
	}
	return string(data), nil
}

// UnmarshalValueBag deserializes the attributes column into a bag. An
// empty column yields an empty bag.
func UnmarshalValueBag(data string) (ValueBag, error) {
	if data == "" {
		return ValueBag{}, nil
	}
	var b ValueBag
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, err
	}
	return b, nil
}

// TypedValue is the sum type of validated attribute values. A bag is
// stringly typed until it passes validation; afterwards each value can be
// parsed into its declared kind and accessed without re-parsing.
type TypedValue interface {
	// Kind returns the attribute kind this value was parsed under.
	Kind() AttributeKind
	// Raw returns the canonical string form, the one stored in the bag.
	Raw() string
}

// TextValue is a free-text value.
type TextValue string

func (v TextValue) Kind() AttributeKind { return KindText }
func (v TextValue) Raw() string         { return string(v) }

// NumberValue is a finite numeric value.
type NumberValue float64

func (v NumberValue) Kind() AttributeKind { return KindNumber }
func (v NumberValue) Raw() string         { return strconv.FormatFloat(float64(v), 'f', -1, 64) }

// DateValue is a calendar date.
type DateValue time.Time

func (v DateValue) Kind() AttributeKind { return KindDate }
func (v DateValue) Raw() string         { return time.Time(v).Format(DateLayout) }

// ChoiceValue is a selected member of a choice attribute's option set.
type ChoiceValue string

func (v ChoiceValue) Kind() AttributeKind { return KindChoice }
func (v ChoiceValue) Raw() string         { return string(v) }

// ParseValue parses a raw bag value into the typed form declared by def.
// Callers are expected to have validated the bag first; ParseValue still
// rejects values that do not parse so that it never fabricates data.
func ParseValue(def *AttributeDefinition, raw string) (TypedValue, error) {
	switch def.Kind {
	case KindText:
		return TextValue(raw), nil
	case KindNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: not a number: %q", def.Key, raw)
		}
		return NumberValue(f), nil
	case KindDate:
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: not a date: %q", def.Key, raw)
		}
		return DateValue(t), nil
	case KindChoice:
		if !def.HasOption(raw) {
			return nil, fmt.Errorf("attribute %q: %q is not an option", def.Key, raw)
		}
		return ChoiceValue(raw), nil
	}
	return nil, fmt.Errorf("attribute %q: unknown kind %q", def.Key, def.Kind)
}

// ParseBag parses every schema-known, non-empty value in the bag into its
// typed form. Keys unknown to the schema are skipped, not rejected; they
// stay in the raw bag untouched.
func ParseBag(t *ItemType, bag ValueBag) (map[string]TypedValue, error) {
	out := make(map[string]TypedValue)
	for _, def := range t.Attributes {
		raw, ok := bag.Get(def.Key)
		if !ok {
			continue
		}
		v, err := ParseValue(def, raw)
		if err != nil {
			return nil, err
		}
		out[def.Key] = v
	}
	return out, nil
}
