package record

import "io"

// CountingWriter wraps a writer and counts bytes written. The count serves
// as the archive-relative offset of the next byte to be emitted.
type CountingWriter struct {
	W io.Writer
	N uint64
}

// Write implements io.Writer.
func (cw *CountingWriter) Write(p []byte) (int, error) {
	n, err := cw.W.Write(p)
	if n > 0 {
		cw.N += uint64(n) //nolint:gosec // n is non-negative by the io.Writer contract
	}
	return n, err
}
