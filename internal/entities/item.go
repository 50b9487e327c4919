package entities

import "time"

// Item status values.
const (
	ItemStatusAvailable = "available"
	ItemStatusTaken     = "taken"
)

// Item is a published listing. TypeName is a soft reference to an ItemType
// by name: the type may be renamed or deleted independently, and items are
// never migrated when that happens. Attributes is the item's value bag,
// wholesale replaced on every edit.
type Item struct {
	ID          int       `json:"id"`
	TypeID      int       `json:"type_id,omitempty"`
	TypeName    string    `json:"type_name"`
	OwnerID     int       `json:"owner_id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Attributes  ValueBag  `json:"attributes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the item's own fields. The attribute bag is deliberately
// not checked here: storage accepts any bag, and bag validation against
// the current schema is the validation engine's pre-submission concern.
func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrItemNameEmpty
	}
	if i.TypeID == 0 && i.TypeName == "" {
		return ErrItemTypeMissing
	}
	return nil
}
