// Package record encodes the fixed binary records of the ZIP format.
//
// All records are little-endian and written field by field directly to the
// output, so a failed write leaves a truncated record behind. Callers treat
// any encoding failure as fatal for the archive.
package record

import "io"

// Record signatures, per the ZIP application note.
const (
	SigLocalHeader     = 0x04034b50
	SigDataDescriptor  = 0x08074b50
	SigCentralHeader   = 0x02014b50
	SigEndOfCentralDir = 0x06054b50
)

const (
	// VersionNeeded is the minimum extractor version (2.0, DEFLATE support).
	VersionNeeded = 20

	// FlagStreamed (general purpose bit 3) marks that CRC and sizes are
	// zero in the local header and follow in a data descriptor.
	FlagStreamed = 1 << 3

	// MethodDeflate is the DEFLATE compression method identifier.
	MethodDeflate = 8
)

// encoder writes little-endian integer fields with a sticky error.
// After the first failed write all further calls are no-ops.
type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) u16(v uint16) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write([]byte{byte(v), byte(v >> 8)})
}

func (e *encoder) u32(v uint32) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

func (e *encoder) raw(b []byte) {
	if e.err != nil || len(b) == 0 {
		return
	}
	_, e.err = e.w.Write(b)
}

// LocalHeader is the per-entry header written before the compressed data.
// CRC and sizes are always zero here; the true values follow in the data
// descriptor (streamed mode).
type LocalHeader struct {
	ModTime uint16
	ModDate uint16
	Name    []byte
}

// WriteLocalHeader writes h to w.
func WriteLocalHeader(w io.Writer, h LocalHeader) error {
	e := encoder{w: w}
	e.u32(SigLocalHeader)
	e.u16(VersionNeeded)
	e.u16(FlagStreamed)
	e.u16(MethodDeflate)
	e.u16(h.ModTime)
	e.u16(h.ModDate)
	e.u32(0) // crc-32, deferred to the data descriptor
	e.u32(0) // compressed size, deferred
	e.u32(0) // uncompressed size, deferred
	e.u16(uint16(len(h.Name)))
	e.u16(0) // extra field length
	e.raw(h.Name)
	return e.err
}

// DataDescriptor is the trailer carrying the final CRC and sizes of a
// streamed entry.
type DataDescriptor struct {
	CRC32            uint32
	CompressedSize   uint32
	UncompressedSize uint32
}

// WriteDataDescriptor writes d to w.
func WriteDataDescriptor(w io.Writer, d DataDescriptor) error {
	e := encoder{w: w}
	e.u32(SigDataDescriptor)
	e.u32(d.CRC32)
	e.u32(d.CompressedSize)
	e.u32(d.UncompressedSize)
	return e.err
}

// CentralHeader is one entry's record in the central directory.
type CentralHeader struct {
	ModTime          uint16
	ModDate          uint16
	CRC32            uint32
	CompressedSize   uint32
	UncompressedSize uint32
	HeaderOffset     uint32
	Name             []byte
}

// WriteCentralHeader writes h to w.
func WriteCentralHeader(w io.Writer, h CentralHeader) error {
	e := encoder{w: w}
	e.u32(SigCentralHeader)
	e.u16(0) // version made by
	e.u16(VersionNeeded)
	e.u16(FlagStreamed)
	e.u16(MethodDeflate)
	e.u16(h.ModTime)
	e.u16(h.ModDate)
	e.u32(h.CRC32)
	e.u32(h.CompressedSize)
	e.u32(h.UncompressedSize)
	e.u16(uint16(len(h.Name)))
	e.u16(0) // extra field length
	e.u16(0) // comment length
	e.u16(0) // disk number start
	e.u16(0) // internal attributes
	e.u32(0) // external attributes
	e.u32(h.HeaderOffset)
	e.raw(h.Name)
	return e.err
}

// EndOfCentralDir is the fixed trailer locating the central directory.
// Both 16-bit entry counts carry the same value; the this-disk count only
// differs on multi-disk archives, which are not produced.
type EndOfCentralDir struct {
	NumEntries uint16
	Size       uint32
	Offset     uint32
}

// WriteEndOfCentralDir writes r to w.
func WriteEndOfCentralDir(w io.Writer, r EndOfCentralDir) error {
	e := encoder{w: w}
	e.u32(SigEndOfCentralDir)
	e.u16(0) // disk number
	e.u16(0) // disk with central directory start
	e.u16(r.NumEntries)
	e.u16(r.NumEntries)
	e.u32(r.Size)
	e.u32(r.Offset)
	e.u16(0) // comment length
	return e.err
}
