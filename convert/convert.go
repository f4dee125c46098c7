// Package convert implements the pro-rata LP-share/underlying-reserve
// converter used by withdraw. It is intentionally small and stateless: a
// fresh Converter is built per call from the current supply and reserves,
// mirroring the two-field converter in the program this core is modeled on
// rather than folding the ratio math directly into the pool state machine.
package convert

import (
	sdkerrors "cosmossdk.io/errors"

	"github.com/stableswap/ssamm/safearith"
)

const ModuleName = "convert"

var (
	// ErrCalculationFailure signals a conversion attempted against a
	// zero LP supply.
	ErrCalculationFailure = sdkerrors.Register(ModuleName, 1, "calculation failure")
)

// Converter computes pro-rata shares of the underlying reserves for a given
// number of LP shares, against the current total supply S.
type Converter struct {
	supply safearith.Uint128
	xa     safearith.Uint128
	xb     safearith.Uint128
}

// New builds a Converter for the current pool supply and reserves. The
// caller (pool.Withdraw) is expected to have already rejected S=0 as
// EmptyPool; New still checks it defensively rather than trusting that.
func New(supply, xa, xb safearith.Uint128) (Converter, error) {
	if supply.IsZero() {
		return Converter{}, sdkerrors.Wrap(ErrCalculationFailure, "cannot convert against zero supply")
	}
	return Converter{supply: supply, xa: xa, xb: xb}, nil
}

// TokenARate returns shares * xa / S.
func (c Converter) TokenARate(shares safearith.Uint128) (safearith.Uint128, error) {
	return safearith.MulDiv(shares, c.xa, c.supply)
}

// TokenBRate returns shares * xb / S.
func (c Converter) TokenBRate(shares safearith.Uint128) (safearith.Uint128, error) {
	return safearith.MulDiv(shares, c.xb, c.supply)
}
