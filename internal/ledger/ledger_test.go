package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAppendAndLast(t *testing.T) {
	t.Parallel()

	var l Ledger
	assert.Zero(t, l.Len())
	assert.Nil(t, l.Last())

	l.Append(Entry{Name: []byte("a"), Offset: 0})
	l.Append(Entry{Name: []byte("b"), Offset: 100})
	require.Equal(t, 2, l.Len())

	// Last is the mutation point for the open entry.
	last := l.Last()
	require.NotNil(t, last)
	assert.Equal(t, []byte("b"), last.Name)

	last.UncompressedSize += 42
	last.CRC32 = 0xabcd
	assert.Equal(t, uint32(42), l.Last().UncompressedSize)
	assert.Equal(t, uint32(0xabcd), l.Last().CRC32)
}

func TestLedgerAllPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	var l Ledger
	for i := range 100 {
		l.Append(Entry{Name: []byte(fmt.Sprintf("e%d", i)), Offset: uint32(i)})
	}

	i := 0
	for e := range l.All() {
		assert.Equal(t, uint32(i), e.Offset)
		i++
	}
	assert.Equal(t, 100, i)
}

func TestLedgerAllStopsEarly(t *testing.T) {
	t.Parallel()

	var l Ledger
	l.Append(Entry{})
	l.Append(Entry{})
	l.Append(Entry{})

	seen := 0
	for range l.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}
