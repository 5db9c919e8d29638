package models

import (
	"time"

	"github.com/google/uuid"
)

type Customization struct {
	ID              uuid.UUID `json:"id"`
	AccountID       string    `json:"account_id"`
	ProfileImageRef *string   `json:"profile_image_ref,omitempty"`
	Description     *string   `json:"description,omitempty"`
	AccentColor     *string   `json:"accent_color,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CustomizationPatch is a partial update. A nil field is left untouched,
// a pointer to "" clears the stored value.
type CustomizationPatch struct {
	ProfileImageRef *string `json:"profile_image_ref,omitempty"`
	Description     *string `json:"description,omitempty"`
	AccentColor     *string `json:"accent_color,omitempty"`
}

func (p CustomizationPatch) IsEmpty() bool {
	return p.ProfileImageRef == nil && p.Description == nil && p.AccentColor == nil
}
