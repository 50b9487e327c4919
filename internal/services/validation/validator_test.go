package validation

import (
	"errors"
	"testing"

	"github.com/mkondo/giveaway/internal/entities"
)

func electronicsType() *entities.ItemType {
	return &entities.ItemType{
		ID:   1,
		Name: "Electronics",
		Attributes: []*entities.AttributeDefinition{
			{Key: "brand", Label: "Brand", Kind: entities.KindText, Required: true},
		},
	}
}

func TestValidateBag_RequiredText(t *testing.T) {
	typ := electronicsType()

	err := ValidateBag(typ, entities.ValueBag{})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Label != "Brand" || verr.Reason != ReasonRequiredMissing {
		t.Errorf("error = %+v, want Brand/required_missing", verr)
	}

	if err := ValidateBag(typ, entities.ValueBag{"brand": "Sony"}); err != nil {
		t.Errorf("valid bag rejected: %v", err)
	}
}

func TestValidateBag_Choice(t *testing.T) {
	typ := &entities.ItemType{
		Name: "Clothing",
		Attributes: []*entities.AttributeDefinition{
			{Key: "size", Label: "Size", Kind: entities.KindChoice, Options: []string{"S", "M", "L"}, Required: true},
		},
	}

	err := ValidateBag(typ, entities.ValueBag{"size": "XL"})
	var verr *Error
	if !errors.As(err, &verr) || verr.Reason != ReasonInvalidChoice {
		t.Fatalf("expected invalid_choice, got %v", err)
	}

	if err := ValidateBag(typ, entities.ValueBag{"size": "M"}); err != nil {
		t.Errorf("member value rejected: %v", err)
	}
}

func TestValidateBag_OptionalChoiceMayBeAbsent(t *testing.T) {
	typ := &entities.ItemType{
		Name: "Clothing",
		Attributes: []*entities.AttributeDefinition{
			{Key: "size", Label: "Size", Kind: entities.KindChoice, Options: []string{"S", "M"}},
		},
	}

	if err := ValidateBag(typ, entities.ValueBag{}); err != nil {
		t.Errorf("absent optional choice rejected: %v", err)
	}
	if err := ValidateBag(typ, entities.ValueBag{"size": ""}); err != nil {
		t.Errorf("empty optional choice rejected: %v", err)
	}
}

func TestValidateBag_Number(t *testing.T) {
	typ := &entities.ItemType{
		Name: "Food",
		Attributes: []*entities.AttributeDefinition{
			{Key: "quantity", Label: "Quantity", Kind: entities.KindNumber},
		},
	}

	tests := []struct {
		name   string
		value  string
		wantOK bool
	}{
		{"integer", "4", true},
		{"decimal", "1.5", true},
		{"negative", "-2", true},
		{"garbage", "many", false},
		{"infinity", "Inf", false},
		{"nan", "NaN", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBag(typ, entities.ValueBag{"quantity": tt.value})
			if tt.wantOK && err != nil {
				t.Errorf("value %q rejected: %v", tt.value, err)
			}
			if !tt.wantOK {
				var verr *Error
				if !errors.As(err, &verr) || verr.Reason != ReasonInvalidNumber {
					t.Errorf("value %q: expected invalid_number, got %v", tt.value, err)
				}
			}
		})
	}
}

func TestValidateBag_Date(t *testing.T) {
	typ := &entities.ItemType{
		Name: "Food",
		Attributes: []*entities.AttributeDefinition{
			{Key: "expiry_date", Label: "Expiry", Kind: entities.KindDate},
		},
	}

	if err := ValidateBag(typ, entities.ValueBag{"expiry_date": "2023-12-31"}); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}

	for _, bad := range []string{"31/12/2023", "2023-02-31", "yesterday"} {
		err := ValidateBag(typ, entities.ValueBag{"expiry_date": bad})
		var verr *Error
		if !errors.As(err, &verr) || verr.Reason != ReasonInvalidDate {
			t.Errorf("value %q: expected invalid_date, got %v", bad, err)
		}
	}
}

func TestValidateBag_UnknownKeysPassThrough(t *testing.T) {
	typ := electronicsType()
	bag := entities.ValueBag{
		"brand":      "Sony",
		"color":      "left over from an older schema",
		"weird_junk": "also fine",
	}

	if err := ValidateBag(typ, bag); err != nil {
		t.Errorf("bag with unknown keys rejected: %v", err)
	}
	if len(bag) != 3 {
		t.Error("validation must not prune the bag")
	}
}

func TestValidateBag_FailFastInSchemaOrder(t *testing.T) {
	typ := &entities.ItemType{
		Name: "Food",
		Attributes: []*entities.AttributeDefinition{
			{Key: "expiry_date", Label: "Expiry", Kind: entities.KindDate, Required: true},
			{Key: "quantity", Label: "Quantity", Kind: entities.KindNumber, Required: true},
		},
	}

	// Both attributes are violated; the first in schema order wins.
	err := ValidateBag(typ, entities.ValueBag{"quantity": "many"})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Key != "expiry_date" {
		t.Errorf("first violation = %q, want expiry_date", verr.Key)
	}
}

func TestValidateBag_Idempotent(t *testing.T) {
	typ := electronicsType()
	bag := entities.ValueBag{"brand": "Sony"}

	for i := 0; i < 3; i++ {
		if err := ValidateBag(typ, bag); err != nil {
			t.Fatalf("pass %d: unchanged valid bag rejected: %v", i, err)
		}
	}
}

func TestValidateBag_DriftedChoiceNoLongerValid(t *testing.T) {
	// A value accepted under an old option set must fail once the options
	// mutate away from it.
	typ := &entities.ItemType{
		Name: "Clothing",
		Attributes: []*entities.AttributeDefinition{
			{Key: "size", Label: "Size", Kind: entities.KindChoice, Options: []string{"S", "M", "L"}},
		},
	}
	bag := entities.ValueBag{"size": "L"}

	if err := ValidateBag(typ, bag); err != nil {
		t.Fatalf("bag valid under v1 rejected: %v", err)
	}

	typ.Attributes[0].Options = []string{"S", "M"}
	err := ValidateBag(typ, bag)
	var verr *Error
	if !errors.As(err, &verr) || verr.Reason != ReasonInvalidChoice {
		t.Errorf("stale choice value should fail after option mutation, got %v", err)
	}
}

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name    string
		typ     *entities.ItemType
		wantErr bool
	}{
		{
			name: "valid",
			typ: &entities.ItemType{
				Name: "Books",
				Attributes: []*entities.AttributeDefinition{
					{Key: "author", Label: "Author", Kind: entities.KindText},
				},
			},
		},
		{
			name:    "empty name",
			typ:     &entities.ItemType{},
			wantErr: true,
		},
		{
			name: "attribute missing label",
			typ: &entities.ItemType{
				Name: "Books",
				Attributes: []*entities.AttributeDefinition{
					{Key: "author", Kind: entities.KindText},
				},
			},
			wantErr: true,
		},
		{
			name: "choice with zero options",
			typ: &entities.ItemType{
				Name: "Clothing",
				Attributes: []*entities.AttributeDefinition{
					{Key: "size", Label: "Size", Kind: entities.KindChoice},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchema(tt.typ)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSchema() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
