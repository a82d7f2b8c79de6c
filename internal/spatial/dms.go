package spatial

import (
	"errors"
	"math"
)

// ErrInvalidOrdinate indicates a packed-DMS value whose magnitude exceeds the
// representable range (more than ±200 degrees).
var ErrInvalidOrdinate = errors.New("ordinate out of range")

// maxPackedOrdinate bounds |value| for DMSToDD; 2,000,000 packed units is
// 200 degrees.
const maxPackedOrdinate = 2000000

// DMSToDD converts a sexagesimal-packed ordinate of the form [d]ddmmss[.s]
// to decimal degrees. The fractional part of the input carries fractional
// seconds and is preserved.
//
// Source-convention longitudes are stored as positive magnitudes for the
// western hemisphere; the caller negates the result for longitude. This
// function applies no sign convention of its own.
func DMSToDD(value float64) (float64, error) {
	if math.Abs(value) > maxPackedOrdinate {
		return 0, ErrInvalidOrdinate
	}

	seconds := math.Mod(value, 100)
	minutes := math.Mod(math.Trunc(value/100)*100, 10000) / 100
	degrees := math.Mod(math.Trunc(value/10000)*10000, 10000000) / 10000

	return degrees + minutes/60 + seconds/3600, nil
}
