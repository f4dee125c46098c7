// Package safearith provides widened, explicitly checked unsigned integer
// arithmetic for the curve math. Every curve computation is carried out in
// Uint128 so that no intermediate product can silently wrap; narrowing back
// to a u64 is a checked operation that fails loudly instead of truncating.
package safearith

import (
	"math/big"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

const ModuleName = "safearith"

var (
	// ErrOverflow signals that a widened computation would exceed the
	// 128-bit range this package guarantees.
	ErrOverflow = sdkerrors.Register(ModuleName, 1, "arithmetic overflow")
	// ErrUnderflow signals a subtraction whose minuend is smaller than its
	// subtrahend.
	ErrUnderflow = sdkerrors.Register(ModuleName, 2, "arithmetic underflow")
	// ErrDivideByZero signals division or modulo by zero.
	ErrDivideByZero = sdkerrors.Register(ModuleName, 3, "division by zero")
	// ErrConversionFailure signals that a Uint128 does not fit in a u64.
	ErrConversionFailure = sdkerrors.Register(ModuleName, 4, "conversion failure")
)

// maxUint128 is 2^128 - 1, the inclusive ceiling for every Uint128 value.
var maxUint128 = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// maxUint64 is 2^64 - 1, the inclusive ceiling for Narrow.
var maxUint64 = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1)))

// Uint128 is a checked, widened unsigned integer held in [0, 2^128).
// It wraps cosmossdk.io/math.Int (itself a big.Int) and bounds every
// intermediate result to the 128-bit range the curve math is contractually
// allowed to use (spec §4.1).
type Uint128 struct {
	v math.Int
}

// Zero is the additive identity.
func Zero() Uint128 { return Uint128{v: math.ZeroInt()} }

// Widen promotes a u64 to a Uint128. This conversion always succeeds: every
// u64 fits in 128 bits.
func Widen(x uint64) Uint128 {
	return Uint128{v: math.NewIntFromUint64(x)}
}

// FromUint64 is an alias for Widen, matching the naming used at call sites
// that read more naturally as "from" than "widen".
func FromUint64(x uint64) Uint128 { return Widen(x) }

// Narrow checks that x fits in a u64 and returns it, or ErrConversionFailure
// if x exceeds 2^64-1.
func Narrow(x Uint128) (uint64, error) {
	if x.v.IsNegative() || x.v.GT(maxUint64) {
		return 0, sdkerrors.Wrapf(ErrConversionFailure, "%s exceeds u64 range", x.v.String())
	}
	return x.v.Uint64(), nil
}

func (a Uint128) checkRange() (Uint128, error) {
	if a.v.IsNegative() {
		return Uint128{}, sdkerrors.Wrapf(ErrUnderflow, "%s is negative", a.v.String())
	}
	if a.v.GT(maxUint128) {
		return Uint128{}, sdkerrors.Wrapf(ErrOverflow, "%s exceeds u128 range", a.v.String())
	}
	return a, nil
}

// Add returns a+b, failing with ErrOverflow if the result exceeds 2^128-1.
func (a Uint128) Add(b Uint128) (Uint128, error) {
	return Uint128{v: a.v.Add(b.v)}.checkRange()
}

// Sub returns a-b, failing with ErrUnderflow if b > a.
func (a Uint128) Sub(b Uint128) (Uint128, error) {
	if a.v.LT(b.v) {
		return Uint128{}, sdkerrors.Wrapf(ErrUnderflow, "cannot subtract %s from %s", b.v.String(), a.v.String())
	}
	return Uint128{v: a.v.Sub(b.v)}, nil
}

// Mul returns a*b, failing with ErrOverflow if the result exceeds 2^128-1.
func (a Uint128) Mul(b Uint128) (Uint128, error) {
	if a.v.IsZero() || b.v.IsZero() {
		return Zero(), nil
	}
	return Uint128{v: a.v.Mul(b.v)}.checkRange()
}

// Quo returns the truncating quotient a/b, failing with ErrDivideByZero if
// b is zero.
func (a Uint128) Quo(b Uint128) (Uint128, error) {
	if b.v.IsZero() {
		return Uint128{}, ErrDivideByZero
	}
	return Uint128{v: a.v.Quo(b.v)}, nil
}

// MulDiv computes (a*b)/c, checking the intermediate product against the
// 128-bit ceiling before dividing. This is the workhorse used throughout
// curve and pool for ratio computations.
func MulDiv(a, b, c Uint128) (Uint128, error) {
	product, err := a.Mul(b)
	if err != nil {
		return Uint128{}, err
	}
	return product.Quo(c)
}

// CeilDiv computes ceil(a/b) = (a + b - 1) / b for b > 0. curve.SwapTo's
// fee step does not use it: that fee is a truncating quotient.
func CeilDiv(a, b Uint128) (Uint128, error) {
	if b.v.IsZero() {
		return Uint128{}, ErrDivideByZero
	}
	if a.v.IsZero() {
		return Zero(), nil
	}
	numerator, err := a.Add(b)
	if err != nil {
		return Uint128{}, err
	}
	one := Widen(1)
	numerator, err = numerator.Sub(one)
	if err != nil {
		return Uint128{}, err
	}
	return numerator.Quo(b)
}

// AbsDiff returns |a-b| without failing on the direction of the subtraction.
func AbsDiff(a, b Uint128) Uint128 {
	if a.v.GTE(b.v) {
		d, _ := a.Sub(b)
		return d
	}
	d, _ := b.Sub(a)
	return d
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Uint128) Cmp(b Uint128) int { return a.v.BigInt().Cmp(b.v.BigInt()) }

func (a Uint128) LT(b Uint128) bool  { return a.v.LT(b.v) }
func (a Uint128) LTE(b Uint128) bool { return a.v.LTE(b.v) }
func (a Uint128) GT(b Uint128) bool  { return a.v.GT(b.v) }
func (a Uint128) GTE(b Uint128) bool { return a.v.GTE(b.v) }
func (a Uint128) IsZero() bool       { return a.v.IsZero() }
func (a Uint128) String() string     { return a.v.String() }
