package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
)

func TestLedgerCursorTokens(t *testing.T) {
	entry := entity.LedgerEntry{ID: uuid.New(), OccurredAt: time.Date(2026, 10, 15, 8, 30, 0, 123, time.UTC)}
	c := LedgerCursorOf(entry)

	parsed, err := ParseLedgerCursor(c.Encode())
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, entry.ID, parsed.ID)
	assert.True(t, entry.OccurredAt.Equal(parsed.OccurredAt))

	none, err := ParseLedgerCursor("")
	assert.NoError(t, err)
	assert.Nil(t, none)

	for _, token := range []string{"not-a-cursor!", "e30", "eyJpZCI6IjAwMDAwMDAwLTAwMDAtMDAwMC0wMDAwLTAwMDAwMDAwMDAwMCJ9"} {
		_, err := ParseLedgerCursor(token)
		assert.Error(t, err, token)
	}
}

func TestLedgerCursorCompare(t *testing.T) {
	at := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high := uuid.MustParse("ffffffff-0000-0000-0000-000000000000")
	c := LedgerCursor{OccurredAt: at, ID: low}

	assert.Equal(t, 0, c.Compare(entity.LedgerEntry{ID: low, OccurredAt: at}))
	assert.Positive(t, c.Compare(entity.LedgerEntry{ID: high, OccurredAt: at}))
	assert.Negative(t, c.Compare(entity.LedgerEntry{ID: high, OccurredAt: at.Add(-time.Second)}))
	assert.Positive(t, c.Compare(entity.LedgerEntry{ID: low, OccurredAt: at.Add(time.Nanosecond)}))
}

func TestLedgerPageNormalize(t *testing.T) {
	p := LedgerPage{Backwards: true}
	p.Normalize()
	assert.Equal(t, DefaultLedgerPageSize, p.Limit)
	assert.False(t, p.Backwards)

	p = LedgerPage{Limit: 500, Cursor: &LedgerCursor{}, Backwards: true}
	p.Normalize()
	assert.Equal(t, MaxLedgerPageSize, p.Limit)
	assert.True(t, p.Backwards)
}
