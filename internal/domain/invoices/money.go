package invoices

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
)

// MinorUnitDecimals is the number of decimals between minor and major units.
const MinorUnitDecimals = 2

// MaxAmount bounds quantities, unit prices, payment amounts and stream rates.
const MaxAmount = 1_000_000_000_000

// ErrAmountOverflow reports a product or sum that does not fit into int64.
var ErrAmountOverflow = fmt.Errorf("%w: amount overflows", apperr.ErrValidation)

// MulAmounts multiplies two non-negative amounts, failing instead of wrapping.
func MulAmounts(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: negative amount", apperr.ErrValidation)
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, ErrAmountOverflow
	}
	return int64(lo), nil
}

// AddAmounts adds two non-negative amounts, failing instead of wrapping.
func AddAmounts(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: negative amount", apperr.ErrValidation)
	}
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || sum > math.MaxInt64 {
		return 0, ErrAmountOverflow
	}
	return int64(sum), nil
}

// FormatAmount renders minor units as a decimal string with thousands separators, e.g. 123456 -> "1,234.56".
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	major := strconv.FormatInt(minor/100, 10)
	var grouped strings.Builder
	for i, r := range major {
		if i > 0 && (len(major)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	return fmt.Sprintf("%s%s.%02d", sign, grouped.String(), minor%100)
}
