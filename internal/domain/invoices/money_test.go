//go:build unit
// +build unit

package invoices

import (
	"math"
	"testing"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{123456, "1,234.56"},
		{100000000, "1,000,000.00"},
		{-2550, "-25.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.minor))
	}
}

func TestMulAmounts(t *testing.T) {
	product, err := MulAmounts(3, 15000)
	require.NoError(t, err)
	assert.Equal(t, int64(45000), product)

	// 2^32 * 2^32 wraps to 0 with plain int64 multiplication
	_, err = MulAmounts(1<<32, 1<<32)
	assert.ErrorIs(t, err, ErrAmountOverflow)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = MulAmounts(-1, 5)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAddAmounts(t *testing.T) {
	sum, err := AddAmounts(math.MaxInt64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), sum)

	_, err = AddAmounts(math.MaxInt64, 1)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}
