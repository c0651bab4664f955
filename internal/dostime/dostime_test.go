package dostime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       time.Time
		wantDate uint16
		wantTime uint16
	}{
		{
			name:     "reference date",
			in:       time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC),
			wantDate: 44<<9 | 3<<5 | 15,
			wantTime: 14<<11 | 30<<5 | 22,
		},
		{
			name:     "epoch of the format",
			in:       time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
			wantDate: 0<<9 | 1<<5 | 1,
			wantTime: 0,
		},
		{
			name:     "odd second rounds down",
			in:       time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC),
			wantDate: 40<<9 | 12<<5 | 31,
			wantTime: 23<<11 | 59<<5 | 29,
		},
		{
			name:     "zero time falls back to 2000-01-01",
			in:       time.Time{},
			wantDate: 20<<9 | 1<<5 | 1,
			wantTime: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotDate, gotTime := Pack(tt.in)
			assert.Equal(t, tt.wantDate, gotDate, "date")
			assert.Equal(t, tt.wantTime, gotTime, "time")
		})
	}
}

func TestPackOutOfRangeWraps(t *testing.T) {
	t.Parallel()

	// A pre-1980 year is not representable; the field wraps instead of
	// failing, like the rest of the bit packing.
	year := 1975
	gotDate, _ := Pack(time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, uint16(year-1980)&0x7f, gotDate>>9)
}
