package zipstream

import (
	"log/slog"
	"math"

	"github.com/klauspost/compress/flate"
)

// DefaultMaxNameLength is the entry-name byte bound used when no
// WithMaxNameLength option is set. Longer names are truncated, not rejected.
const DefaultMaxNameLength = 127

// config holds writer configuration.
type config struct {
	level      int
	maxNameLen int
	logger     *slog.Logger
}

// Option configures a Writer.
type Option func(*config)

// WithCompressionLevel sets the DEFLATE compression level, in the range
// accepted by flate.NewWriter. The default is flate.DefaultCompression.
func WithCompressionLevel(level int) Option {
	return func(cfg *config) {
		cfg.level = level
	}
}

// WithMaxNameLength sets the byte bound applied to entry names. Names longer
// than the bound are silently truncated. Values below one are ignored and
// values above the format's 16-bit name-length field are capped.
func WithMaxNameLength(n int) Option {
	return func(cfg *config) {
		if n <= 0 {
			return
		}
		if n > math.MaxUint16 {
			n = math.MaxUint16
		}
		cfg.maxNameLen = n
	}
}

// WithLogger sets a logger for writer diagnostics. Without it the writer
// logs nothing.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func defaultConfig() config {
	return config{
		level:      flate.DefaultCompression,
		maxNameLen: DefaultMaxNameLength,
	}
}
