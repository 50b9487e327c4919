package view

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mkondo/giveaway/internal/entities"
)

// staticLookup serves a fixed schema list, standing in for the registry.
type staticLookup struct {
	types []*entities.ItemType
	err   error
}

func (s *staticLookup) ItemTypes(ctx context.Context) ([]*entities.ItemType, error) {
	return s.types, s.err
}

func foodType() *entities.ItemType {
	return &entities.ItemType{
		ID:   1,
		Name: "Food",
		Attributes: []*entities.AttributeDefinition{
			{Key: "expiry_date", Label: "Expiry", Kind: entities.KindDate},
			{Key: "quantity", Label: "Quantity", Kind: entities.KindNumber},
		},
	}
}

func TestReconciler_Display_Resolved(t *testing.T) {
	r := NewReconciler(&staticLookup{types: []*entities.ItemType{foodType()}})
	item := &entities.Item{
		TypeName: "Food",
		Attributes: entities.ValueBag{
			"quantity":    "4",
			"expiry_date": "2023-12-31",
		},
	}

	v, err := r.Display(context.Background(), item)
	if err != nil {
		t.Fatalf("Display failed: %v", err)
	}
	if v.State != StateSchemaResolved {
		t.Fatalf("state = %v, want resolved", v.State)
	}
	// Rows follow schema order, not bag order.
	if len(v.Rows) != 2 || v.Rows[0].Key != "expiry_date" || v.Rows[1].Key != "quantity" {
		t.Errorf("rows = %+v, want schema order expiry_date, quantity", v.Rows)
	}
	if v.Rows[0].Label != "Expiry" || v.Rows[0].Value != "2023-12-31" {
		t.Errorf("row = %+v", v.Rows[0])
	}
}

func TestReconciler_Display_OmitsEmptyValues(t *testing.T) {
	r := NewReconciler(&staticLookup{types: []*entities.ItemType{foodType()}})
	item := &entities.Item{
		TypeName:   "Food",
		Attributes: entities.ValueBag{"quantity": "4", "expiry_date": ""},
	}

	v, err := r.Display(context.Background(), item)
	if err != nil {
		t.Fatalf("Display failed: %v", err)
	}
	if len(v.Rows) != 1 || v.Rows[0].Key != "quantity" {
		t.Errorf("rows = %+v, want only quantity", v.Rows)
	}
}

func TestReconciler_Display_SchemaMissing(t *testing.T) {
	// The item's type was deleted after creation; rendering must not fail
	// and must show every raw key.
	r := NewReconciler(&staticLookup{types: []*entities.ItemType{foodType()}})
	item := &entities.Item{
		TypeName:   "Obsolete Category",
		Attributes: entities.ValueBag{"zeta": "1", "alpha": "2"},
	}

	v, err := r.Display(context.Background(), item)
	if err != nil {
		t.Fatalf("Display failed: %v", err)
	}
	if v.State != StateSchemaMissing {
		t.Fatalf("state = %v, want missing", v.State)
	}
	if v.Type != nil {
		t.Error("missing state must not carry a type")
	}

	var keys []string
	for _, row := range v.Rows {
		if row.Definition != nil {
			t.Errorf("degraded row %q must not carry a definition", row.Key)
		}
		if row.Label != row.Key {
			t.Errorf("degraded row label = %q, want raw key %q", row.Label, row.Key)
		}
		keys = append(keys, row.Key)
	}
	if !reflect.DeepEqual(keys, []string{"alpha", "zeta"}) {
		t.Errorf("keys = %v, want sorted raw keys", keys)
	}
}

func TestReconciler_Display_LookupFailure(t *testing.T) {
	remote := errors.New("connection refused")
	r := NewReconciler(&staticLookup{err: remote})

	_, err := r.Display(context.Background(), &entities.Item{TypeName: "Food"})
	if !errors.Is(err, remote) {
		t.Errorf("expected wrapped remote failure, got %v", err)
	}
}

func TestReconciler_EditForm_SchemaDrift(t *testing.T) {
	// Item was created under a schema v1 with a "color" attribute; v2
	// removed color and added a required "material".
	v2 := &entities.ItemType{
		ID:   1,
		Name: "Furniture",
		Attributes: []*entities.AttributeDefinition{
			{Key: "material", Label: "Material", Kind: entities.KindText, Required: true},
		},
	}
	r := NewReconciler(&staticLookup{types: []*entities.ItemType{v2}})
	item := &entities.Item{
		TypeName:   "Furniture",
		Attributes: entities.ValueBag{"color": "red"},
	}

	form, err := r.EditForm(context.Background(), item)
	if err != nil {
		t.Fatalf("EditForm failed: %v", err)
	}
	if form.State != StateSchemaResolved {
		t.Fatalf("state = %v, want resolved", form.State)
	}

	// The added attribute appears as an empty input; the removed one has
	// no field at all.
	if len(form.Fields) != 1 {
		t.Fatalf("fields = %+v, want exactly material", form.Fields)
	}
	if form.Fields[0].Definition.Key != "material" || form.Fields[0].Value != "" {
		t.Errorf("field = %+v, want empty material input", form.Fields[0])
	}

	// The stray value stays in the stored bag: rendering never prunes.
	if item.Attributes["color"] != "red" {
		t.Error("EditForm must not mutate the stored bag")
	}
}

func TestReconciler_EditForm_SeedsExistingValues(t *testing.T) {
	r := NewReconciler(&staticLookup{types: []*entities.ItemType{foodType()}})
	item := &entities.Item{
		TypeName:   "Food",
		Attributes: entities.ValueBag{"quantity": "4"},
	}

	form, err := r.EditForm(context.Background(), item)
	if err != nil {
		t.Fatalf("EditForm failed: %v", err)
	}
	// Every schema attribute gets an input, seeded or empty.
	if len(form.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(form.Fields))
	}
	if form.Fields[0].Value != "" {
		t.Errorf("expiry field = %q, want empty", form.Fields[0].Value)
	}
	if form.Fields[1].Value != "4" {
		t.Errorf("quantity field = %q, want 4", form.Fields[1].Value)
	}
}

func TestReconciler_EditForm_SchemaMissing(t *testing.T) {
	r := NewReconciler(&staticLookup{})
	form, err := r.EditForm(context.Background(), &entities.Item{TypeName: "Gone"})
	if err != nil {
		t.Fatalf("EditForm failed: %v", err)
	}
	if form.State != StateSchemaMissing || len(form.Fields) != 0 {
		t.Errorf("form = %+v, want missing state with no fields", form)
	}
}

func TestReconciler_RoundTrip(t *testing.T) {
	// A validated bag must render back exactly the values submitted.
	typ := foodType()
	r := NewReconciler(&staticLookup{types: []*entities.ItemType{typ}})
	bag := entities.ValueBag{"expiry_date": "2023-12-31", "quantity": "4"}
	item := &entities.Item{TypeName: "Food", Attributes: bag}

	v, err := r.Display(context.Background(), item)
	if err != nil {
		t.Fatalf("Display failed: %v", err)
	}
	for _, row := range v.Rows {
		if bag[row.Key] != row.Value {
			t.Errorf("row %q = %q, want %q", row.Key, row.Value, bag[row.Key])
		}
	}
}
