package activity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPrependsMostRecentFirst(t *testing.T) {
	log := NewLog()
	log.Append("first")
	log.Append("second")
	log.Append("third")

	entries := log.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Message)
	assert.Equal(t, "second", entries[1].Message)
	assert.Equal(t, "first", entries[2].Message)
	for _, e := range entries {
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestCapEvictsOldest(t *testing.T) {
	log := NewLog()
	for i := 1; i <= DefaultCap+1; i++ {
		log.Append(fmt.Sprintf("entry %d", i))
	}

	entries := log.Entries()
	require.Len(t, entries, DefaultCap)
	assert.Equal(t, "entry 11", entries[0].Message)
	// The oldest entry is gone from the tail.
	assert.Equal(t, "entry 2", entries[len(entries)-1].Message)
}

func TestCapNeverExceeded(t *testing.T) {
	log := NewLog()
	for i := 0; i < 50; i++ {
		log.Append("entry")
		assert.LessOrEqual(t, log.Len(), DefaultCap)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	log := NewLog()
	log.Append("entry")
	log.Clear()
	assert.Empty(t, log.Entries())
	log.Clear()
	assert.Empty(t, log.Entries())
}

func TestNonPositiveCapFallsBack(t *testing.T) {
	log := NewLogWithCap(0)
	for i := 0; i < 20; i++ {
		log.Append("entry")
	}
	assert.Equal(t, DefaultCap, log.Len())
}

func TestEntriesReturnsCopy(t *testing.T) {
	log := NewLog()
	log.Append("entry")
	entries := log.Entries()
	entries[0].Message = "mutated"
	assert.Equal(t, "entry", log.Entries()[0].Message)
}
