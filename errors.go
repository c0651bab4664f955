package zipstream

import "errors"

var (
	// ErrNilSink is returned by NewWriter when no output writer is supplied.
	ErrNilSink = errors.New("zipstream: nil sink")

	// ErrEntryOpen is returned when Create or Finish is called while an
	// entry is still open.
	ErrEntryOpen = errors.New("zipstream: entry already open")

	// ErrNoEntry is returned when Write is called with no open entry.
	ErrNoEntry = errors.New("zipstream: no entry open")

	// ErrFinalized is returned for operations on a writer whose archive
	// has already been finalized by Finish.
	ErrFinalized = errors.New("zipstream: archive finalized")

	// ErrClosed is returned for operations on a writer after Close.
	ErrClosed = errors.New("zipstream: writer closed")

	// ErrTooManyEntries is returned when the archive would exceed the
	// format's 16-bit entry count.
	ErrTooManyEntries = errors.New("zipstream: too many entries")

	// ErrArchiveTooLarge is returned when an offset or size no longer fits
	// a 32-bit record field. ZIP64 archives are not produced.
	ErrArchiveTooLarge = errors.New("zipstream: archive too large")
)
