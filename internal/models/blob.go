package models

import "time"

// Blob records an object held by blob storage and the account that uploaded it.
type Blob struct {
	Ref         string    `json:"ref"`
	AccountID   string    `json:"account_id"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
