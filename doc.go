// Package zipstream writes ZIP archives incrementally to a caller-supplied
// sink without buffering whole entries or the whole archive in memory.
//
// Entries are compressed with DEFLATE as data arrives and each local header
// is written in streamed mode (general purpose bit 3): CRC and sizes are
// zero in the header and follow the entry's data in a data descriptor. The
// central directory is written once, by Finish.
//
// The intended call sequence per archive is
//
//	w, err := zipstream.NewWriter(sink)
//	...
//	w.Create("a.txt", modTime)
//	w.Write(data)     // any number of times
//	w.CloseEntry()
//	...               // more entries
//	w.Finish()
//	w.Close()
//
// A Writer is a single synchronous state machine; it is not safe for
// concurrent use. The sink is never closed by the writer.
package zipstream
