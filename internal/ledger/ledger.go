// Package ledger tracks the members of an archive being written, in the
// order they were added, until the central directory pass consumes them.
package ledger

import "iter"

// Entry is the bookkeeping record for one archive member. Name holds the
// already-truncated raw name bytes. Size and CRC fields accumulate while
// the entry is open and are frozen when it closes.
type Entry struct {
	Name             []byte
	Offset           uint32
	CRC32            uint32
	UncompressedSize uint32
	CompressedSize   uint32
	DOSTime          uint16
	DOSDate          uint16
}

// Ledger is an append-only sequence of entry records. The zero value is
// ready to use.
type Ledger struct {
	entries []Entry
}

// Append adds a record to the end of the ledger.
func (l *Ledger) Append(e Entry) {
	l.entries = append(l.entries, e)
}

// Last returns the most recently appended record for in-place mutation.
// The pointer is only valid until the next Append. Returns nil on an
// empty ledger.
func (l *Ledger) Last() *Entry {
	if len(l.entries) == 0 {
		return nil
	}
	return &l.entries[len(l.entries)-1]
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// All returns an iterator over the records in insertion order.
func (l *Ledger) All() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for i := range l.entries {
			if !yield(&l.entries[i]) {
				return
			}
		}
	}
}
