package mathutil

import (
	"errors"
	"math"
	"math/big"
	"math/bits"

	"github.com/shopspring/decimal"
)

// ErrOverflow is thrown when the result of a checked operation does not fit
// into an uint64.
var ErrOverflow = errors.New("arithmetic overflow")

// CheckedMul multiplies x * y and errors instead of wrapping around on
// overflow.
func CheckedMul(x, y uint64) (uint64, error) {
	hi, lo := bits.Mul64(x, y)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// CheckedAdd adds x + y and errors instead of wrapping around on overflow.
func CheckedAdd(x, y uint64) (uint64, error) {
	sum, carry := bits.Add64(x, y, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// BigMul takes two uint64 numbers and returns x * y as a big.Int, never
// overflowing.
func BigMul(x, y uint64) *big.Int {
	X, Y := new(big.Int).SetUint64(x), new(big.Int).SetUint64(y)
	return new(big.Int).Mul(X, Y)
}

// Uint64FromDecimal converts a non-negative integer decimal into an uint64.
func Uint64FromDecimal(d decimal.Decimal) (uint64, error) {
	if d.IsNegative() || !d.IsInteger() {
		return 0, ErrOverflow
	}
	if d.Cmp(decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)) > 0 {
		return 0, ErrOverflow
	}
	return d.BigInt().Uint64(), nil
}
