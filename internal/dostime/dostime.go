// Package dostime packs calendar times into the 16-bit MS-DOS date and
// time fields the ZIP format uses for entry timestamps.
package dostime

import "time"

// fallback is used when the caller has no timestamp to offer.
var fallback = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Pack converts t to MS-DOS date and time fields.
//
// Date layout: bits 15-9 year-1980, 8-5 month, 4-0 day.
// Time layout: bits 15-11 hours, 10-5 minutes, 4-0 seconds/2.
//
// Components outside the representable range are masked and wrap, matching
// the format's native bit packing. Years before 1980 wrap the same way; the
// format cannot represent them. The zero time maps to 2000-01-01 00:00:00.
func Pack(t time.Time) (dosDate, dosTime uint16) {
	if t.IsZero() {
		t = fallback
	}

	dosDate = uint16(t.Day()) & 0x1f
	dosDate |= (uint16(t.Month()) & 0x0f) << 5
	dosDate |= (uint16(t.Year()-1980) & 0x7f) << 9 //nolint:gosec // wrap is the format's own behavior

	dosTime = uint16(t.Second()/2) & 0x1f
	dosTime |= (uint16(t.Minute()) & 0x3f) << 5
	dosTime |= (uint16(t.Hour()) & 0x1f) << 11
	return dosDate, dosTime
}
