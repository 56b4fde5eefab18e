// internal/core/domain/item_type.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemType is a named category items can be filed under. Types exist
// independently of their items; an item references at most one type.
type ItemType struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate performs domain validation on the item type.
func (t *ItemType) Validate() error {
	if t.Name == "" {
		return NewValidation(CodeInvalidItemType, "name is required")
	}
	return nil
}

// PrepareForStorage assigns an identity and timestamps before the first write.
func (t *ItemType) PrepareForStorage() {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
