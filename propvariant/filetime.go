/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package propvariant

import (
	"time"
)

// filetimeEpochDelta is the number of 100 ns intervals between the FILETIME epoch (1601-01-01 UTC) and the
// Unix epoch (1970-01-01 UTC).
const filetimeEpochDelta = 116444736000000000

// filetimeToTime converts a 64 bit FILETIME tick count into a UTC instant. The conversion is exact, FILETIME
// resolution (100 ns) is coarser than Go's.
func filetimeToTime(ticks uint64) time.Time {
	unixTicks := int64(ticks) - filetimeEpochDelta
	return time.Unix(unixTicks/1e7, (unixTicks%1e7)*100).UTC()
}

// timeToFiletime converts a UTC instant into a 64 bit FILETIME tick count. Computed from whole seconds plus
// the nanosecond remainder instead of UnixNano, so that dates far outside the int64 nanosecond range (e.g.
// year 9999) convert without overflow.
func timeToFiletime(t time.Time) uint64 {
	return uint64(t.Unix()*1e7 + int64(t.Nanosecond())/100 + filetimeEpochDelta)
}

// oleDateToTime converts an OLE automation date (fractional days since 1899-12-30) into a UTC instant.
// Rounded to the nearest millisecond, which is the documented resolution of automation dates.
func oleDateToTime(days float64) time.Time {
	base := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	msec := int64(days*24*60*60*1000 + 0.5)
	return base.Add(time.Duration(msec) * time.Millisecond)
}
