package tower

import (
	"math"
	"math/big"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatValue renders v in decimal, with thousands separators when grouped.
func FormatValue(v *big.Int, grouped bool) string {
	if v == nil {
		return "undefined"
	}
	if grouped {
		return humanize.BigComma(v)
	}
	return v.String()
}

// FormatBits describes the size of v without printing its digits, which
// stops being practical a few heights up.
func FormatBits(v *big.Int) string {
	if v == nil {
		return "undefined"
	}
	n := int64(v.BitLen())
	if v.Sign() > 0 && v.TrailingZeroBits() == uint(n-1) {
		return "2^" + humanize.Comma(n-1)
	}
	return humanize.Comma(n) + " bits"
}

func FormatRatio(r float64) string {
	if math.IsInf(r, 1) {
		return "Inf"
	}
	return strconv.FormatFloat(r, 'f', 4, 64)
}
