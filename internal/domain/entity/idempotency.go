package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores processed requests to prevent duplicates
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_scope_key;size:255;not null"` // The idempotency key from client
	Scope        string    `gorm:"uniqueIndex:idx_idempotency_scope_key;size:255;not null"` // Client identity (X-Client-ID or IP)
	Endpoint     string    `gorm:"size:255;not null"`                                       // API endpoint (e.g., "POST /orders")
	RequestHash  string    `gorm:"size:64"`                                                 // SHA256 hash of request body
	ResponseCode int       `gorm:"not null;default:0"` // 0 while the request is in flight
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// IsPending reports whether the request holding the key has not answered yet
func (i *IdempotencyKey) IsPending() bool {
	return i.ResponseCode == 0
}
