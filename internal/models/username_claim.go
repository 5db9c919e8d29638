package models

import (
	"time"

	"github.com/google/uuid"
)

type UsernameClaim struct {
	ID        uuid.UUID `json:"id"`
	AccountID string    `json:"account_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
