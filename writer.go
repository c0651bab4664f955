package zipstream

import (
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/meigma/zipstream/internal/dostime"
	"github.com/meigma/zipstream/internal/ledger"
	"github.com/meigma/zipstream/internal/record"
)

// Writer streams a ZIP archive to a sink, one entry at a time.
//
// At most one entry is open at any moment. Protocol mistakes (opening over
// an open entry, writing with none open, finishing mid-entry) fail without
// changing state, so the caller can continue with a valid call. A sink
// failure is different: the sink has already observed a truncated record,
// so the error is recorded and every later operation returns it. The
// partial archive must be discarded.
type Writer struct {
	cfg     config
	sink    *record.CountingWriter
	comp    *flate.Writer
	entries ledger.Ledger

	// crc accumulates over the open entry's uncompressed bytes.
	crc uint32

	// dataStart is the sink count where the open entry's compressed data
	// began; the difference to the current count is the compressed size.
	dataStart uint64

	entryOpen bool
	finalized bool
	closed    bool
	err       error
}

// NewWriter returns a Writer that emits the archive to w. The writer never
// closes w. Construction fails on a nil sink or an invalid compression
// level, leaving nothing allocated.
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	if w == nil {
		return nil, ErrNilSink
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	sink := &record.CountingWriter{W: w}
	comp, err := flate.NewWriter(sink, cfg.level)
	if err != nil {
		return nil, fmt.Errorf("create deflate stream: %w", err)
	}

	return &Writer{cfg: cfg, sink: sink, comp: comp}, nil
}

// Create opens a new entry named name with the given modification time and
// writes its local file header. Names longer than the configured bound are
// truncated to the bound. The zero modTime stores 2000-01-01 00:00:00.
//
// Create fails if an entry is already open, if the archive is finalized or
// the writer closed, or if the header cannot be written to the sink.
func (w *Writer) Create(name string, modTime time.Time) error {
	if err := w.ready(); err != nil {
		return err
	}
	if w.entryOpen {
		return ErrEntryOpen
	}
	if w.entries.Len() >= math.MaxUint16 {
		return ErrTooManyEntries
	}
	if w.sink.N > math.MaxUint32 {
		return w.fail(ErrArchiveTooLarge)
	}

	nameBytes := []byte(name)
	if len(nameBytes) > w.cfg.maxNameLen {
		nameBytes = nameBytes[:w.cfg.maxNameLen]
		w.log().Debug("entry name truncated", "name", name, "limit", w.cfg.maxNameLen)
	}
	dosDate, dosTime := dostime.Pack(modTime)
	offset := uint32(w.sink.N)

	err := record.WriteLocalHeader(w.sink, record.LocalHeader{
		ModTime: dosTime,
		ModDate: dosDate,
		Name:    nameBytes,
	})
	if err != nil {
		return w.fail(fmt.Errorf("write local file header: %w", err))
	}

	w.entries.Append(ledger.Entry{
		Name:    nameBytes,
		Offset:  offset,
		DOSTime: dosTime,
		DOSDate: dosDate,
	})
	w.crc = 0
	w.comp.Reset(w.sink)
	w.dataStart = w.sink.N
	w.entryOpen = true

	w.log().Debug("entry opened", "name", string(nameBytes), "offset", offset)
	return nil
}

// Write appends p to the open entry, compressing it on the fly. It
// implements io.Writer. Bytes are checksummed and compressed in the order
// received; an empty p is a no-op success.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.ready(); err != nil {
		return 0, err
	}
	if !w.entryOpen {
		return 0, ErrNoEntry
	}
	if len(p) == 0 {
		return 0, nil
	}

	e := w.entries.Last()
	if uint64(len(p)) > math.MaxUint32-uint64(e.UncompressedSize) {
		return 0, w.fail(ErrArchiveTooLarge)
	}

	w.crc = crc32.Update(w.crc, crc32.IEEETable, p)
	n, err := w.comp.Write(p)
	if err != nil {
		return n, w.fail(fmt.Errorf("compress entry data: %w", err))
	}
	e.UncompressedSize += uint32(len(p))
	e.CRC32 = w.crc
	return n, nil
}

// CloseEntry finishes the open entry: it drains the compressor and writes
// the data descriptor carrying the final CRC and sizes. CloseEntry with no
// open entry is a no-op success, in every state.
func (w *Writer) CloseEntry() error {
	if !w.entryOpen {
		return nil
	}
	if w.err != nil {
		return w.err
	}

	if err := w.comp.Close(); err != nil {
		return w.fail(fmt.Errorf("flush deflate stream: %w", err))
	}

	compressed := w.sink.N - w.dataStart
	if compressed > math.MaxUint32 {
		return w.fail(ErrArchiveTooLarge)
	}

	e := w.entries.Last()
	e.CRC32 = w.crc
	e.CompressedSize = uint32(compressed)

	err := record.WriteDataDescriptor(w.sink, record.DataDescriptor{
		CRC32:            e.CRC32,
		CompressedSize:   e.CompressedSize,
		UncompressedSize: e.UncompressedSize,
	})
	if err != nil {
		return w.fail(fmt.Errorf("write data descriptor: %w", err))
	}
	w.entryOpen = false

	w.log().Debug("entry closed",
		"name", string(e.Name),
		"size", e.UncompressedSize,
		"compressed", e.CompressedSize)
	return nil
}

// Finish writes the central directory and the end-of-central-directory
// record, completing the archive. It fails if an entry is still open; an
// unterminated entry would leave the archive invalid. After a successful
// Finish the writer accepts no further operations.
func (w *Writer) Finish() error {
	if err := w.ready(); err != nil {
		return err
	}
	if w.entryOpen {
		return ErrEntryOpen
	}

	dirOffset := w.sink.N
	if dirOffset > math.MaxUint32 {
		return w.fail(ErrArchiveTooLarge)
	}

	for e := range w.entries.All() {
		err := record.WriteCentralHeader(w.sink, record.CentralHeader{
			ModTime:          e.DOSTime,
			ModDate:          e.DOSDate,
			CRC32:            e.CRC32,
			CompressedSize:   e.CompressedSize,
			UncompressedSize: e.UncompressedSize,
			HeaderOffset:     e.Offset,
			Name:             e.Name,
		})
		if err != nil {
			return w.fail(fmt.Errorf("write central directory header: %w", err))
		}
	}

	// The trailer itself is not part of the directory, so the size is
	// taken before it is written.
	err := record.WriteEndOfCentralDir(w.sink, record.EndOfCentralDir{
		NumEntries: uint16(w.entries.Len()),
		Size:       uint32(w.sink.N - dirOffset),
		Offset:     uint32(dirOffset),
	})
	if err != nil {
		return w.fail(fmt.Errorf("write end of central directory: %w", err))
	}
	w.finalized = true

	w.log().Info("archive finalized", "entries", w.entries.Len(), "bytes", w.sink.N)
	return nil
}

// Close releases the writer's resources. It does not close the sink and
// does not flush anything: call Finish first for a complete archive.
// Closing after an aborted sequence is safe; the archive is simply
// incomplete. Close is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.entryOpen = false
	w.comp = nil
	w.entries = ledger.Ledger{}
	return nil
}

// NumEntries returns the number of entries added so far.
func (w *Writer) NumEntries() int {
	return w.entries.Len()
}

// BytesWritten returns the total number of bytes emitted to the sink.
func (w *Writer) BytesWritten() uint64 {
	return w.sink.N
}

// ready reports whether the writer can accept a state-changing operation.
func (w *Writer) ready() error {
	switch {
	case w.err != nil:
		return w.err
	case w.closed:
		return ErrClosed
	case w.finalized:
		return ErrFinalized
	}
	return nil
}

// fail records a terminal error. Every later operation returns it.
func (w *Writer) fail(err error) error {
	w.err = err
	return err
}

// log returns the logger, falling back to a discard logger if nil.
func (w *Writer) log() *slog.Logger {
	if w.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.cfg.logger
}
