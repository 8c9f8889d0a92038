package mathutil

import (
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// TenThousands is the divisor for fee rates expressed in basis points.
var TenThousands = uint64(10000)

// MaxSafeFeeAmount is the largest amount whose multiplication by a basis
// point rate cannot overflow an uint64.
var MaxSafeFeeAmount = uint64(math.MaxUint64) / TenThousands

// ErrOverflow is returned by the checked operations when the result does
// not fit into an uint64.
var ErrOverflow = errors.New("arithmetic overflow")

// CheckedAdd returns x + y or ErrOverflow, never a wrapped result.
func CheckedAdd(x, y uint64) (uint64, error) {
	if x > math.MaxUint64-y {
		return 0, ErrOverflow
	}
	return x + y, nil
}

// CheckedSub returns x - y or ErrOverflow when y > x.
func CheckedSub(x, y uint64) (uint64, error) {
	if y > x {
		return 0, ErrOverflow
	}
	return x - y, nil
}

// CheckedMul returns x * y or ErrOverflow.
func CheckedMul(x, y uint64) (uint64, error) {
	if x == 0 || y == 0 {
		return 0, nil
	}
	if x > math.MaxUint64/y {
		return 0, ErrOverflow
	}
	return x * y, nil
}

// CheckedDiv returns x / y or ErrOverflow when y is zero.
func CheckedDiv(x, y uint64) (uint64, error) {
	if y == 0 {
		return 0, ErrOverflow
	}
	return x / y, nil
}

// Clamp bounds v into the [min, max] interval.
func Clamp(v, min, max uint64) uint64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Div takes two uint64 numbers and divides them x / y and returns the result as decimal.Decimal
func Div(x, y uint64) (z decimal.Decimal) {
	X := decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
	Y := decimal.NewFromBigInt(new(big.Int).SetUint64(y), 0)
	z = X.Div(Y)
	return
}

// Ratio returns x / y in basis points as a decimal, used for reporting
// effective fee rates.
func Ratio(x, y uint64) decimal.Decimal {
	if y == 0 {
		return decimal.Zero
	}
	bps := decimal.NewFromBigInt(new(big.Int).SetUint64(TenThousands), 0)
	return Div(x, y).Mul(bps)
}
