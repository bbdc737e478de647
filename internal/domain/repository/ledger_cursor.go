package repository

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
)

const (
	DefaultLedgerPageSize = 15
	MaxLedgerPageSize     = 100
)

var errInvalidLedgerCursor = errors.New("invalid ledger cursor")

// LedgerCursor is a position in the ledger ordered by (occurred_at, id)
type LedgerCursor struct {
	OccurredAt time.Time `json:"t"`
	ID         uuid.UUID `json:"id"`
}

// LedgerCursorOf positions a cursor on entry
func LedgerCursorOf(entry entity.LedgerEntry) LedgerCursor {
	return LedgerCursor{OccurredAt: entry.OccurredAt, ID: entry.ID}
}

// Encode renders the cursor as an opaque URL-safe token
func (c LedgerCursor) Encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// ParseLedgerCursor decodes a token made by Encode. An empty token is no cursor.
func ParseLedgerCursor(token string) (*LedgerCursor, error) {
	if token == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, errInvalidLedgerCursor
	}
	var c LedgerCursor
	if err := json.Unmarshal(b, &c); err != nil || c.ID == uuid.Nil || c.OccurredAt.IsZero() {
		return nil, errInvalidLedgerCursor
	}
	return &c, nil
}

// Compare orders entry against the cursor: negative when entry is older,
// positive when it is newer.
func (c LedgerCursor) Compare(entry entity.LedgerEntry) int {
	if n := entry.OccurredAt.Compare(c.OccurredAt); n != 0 {
		return n
	}
	a, b := entry.ID.String(), c.ID.String()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// LedgerPage selects a window of the newest-first ledger walk. Without a
// cursor it starts at the newest entry; Backwards reads the entries newer
// than the cursor instead of older.
type LedgerPage struct {
	Cursor    *LedgerCursor
	Backwards bool
	Limit     int
}

// Normalize clamps Limit to [1, MaxLedgerPageSize]
func (p *LedgerPage) Normalize() {
	if p.Limit < 1 {
		p.Limit = DefaultLedgerPageSize
	}
	if p.Limit > MaxLedgerPageSize {
		p.Limit = MaxLedgerPageSize
	}
	if p.Cursor == nil {
		p.Backwards = false
	}
}
