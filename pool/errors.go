package pool

import (
	sdkerrors "cosmossdk.io/errors"
)

const ModuleName = "pool"

// Sentinel errors, one per failure mode the state machine can signal.
// Registered the same way the teacher registers its own module errors:
// a stable code per sentinel, raised with .Wrap/.Wrapf for call-site
// context rather than constructed ad hoc.
var (
	ErrAlreadyInUse          = sdkerrors.Register(ModuleName, 1, "pool already initialized")
	ErrInvalidProgramAddress = sdkerrors.Register(ModuleName, 2, "supplied authority does not match the derived one")
	ErrInvalidOwner          = sdkerrors.Register(ModuleName, 3, "account is not owned by the pool authority")
	ErrInvalidAdmin          = sdkerrors.Register(ModuleName, 4, "admin fee account mint does not match its side")
	ErrExpectedMint          = sdkerrors.Register(ModuleName, 5, "expected a mint account")
	ErrExpectedAccount       = sdkerrors.Register(ModuleName, 6, "expected a token account")
	ErrRepeatedMint          = sdkerrors.Register(ModuleName, 7, "both reserves declare the same mint")
	ErrEmptySupply           = sdkerrors.Register(ModuleName, 8, "reserve is empty at initialize")
	ErrEmptyPool             = sdkerrors.Register(ModuleName, 9, "pool has zero LP supply")
	ErrInvalidSupply         = sdkerrors.Register(ModuleName, 10, "LP mint has non-zero supply at initialize")
	ErrInvalidDelegate       = sdkerrors.Register(ModuleName, 11, "reserve has a delegate")
	ErrInvalidInput          = sdkerrors.Register(ModuleName, 12, "swap source equals swap destination")
	ErrIncorrectSwapAccount  = sdkerrors.Register(ModuleName, 13, "declared account is not one of the pool's reserves")
	ErrIncorrectPoolMint     = sdkerrors.Register(ModuleName, 14, "declared LP mint is not the pool's")
	ErrExceededSlippage      = sdkerrors.Register(ModuleName, 15, "computed output is below the stated minimum")
	ErrCalculationFailure    = sdkerrors.Register(ModuleName, 16, "calculation failure")
	ErrConversionFailure     = sdkerrors.Register(ModuleName, 17, "128-bit to 64-bit narrowing overflow")
	ErrInvalidInstruction    = sdkerrors.Register(ModuleName, 18, "undecodable operation tag or payload")

	// ErrNotInitialized is not part of spec.md §7's table but is required
	// by §4.4.2-§4.4.4's "pool initialized" precondition; the table omits
	// a dedicated kind for it, so it is added here rather than overloading
	// an unrelated sentinel.
	ErrNotInitialized = sdkerrors.Register(ModuleName, 19, "pool is not yet initialized")
)
