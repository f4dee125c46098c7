// Package instruction decodes the wire format of spec.md §6: a single
// leading tag byte selects the operation, the remainder is little-endian
// packed arguments. Any unrecognized tag or truncated payload is reported
// as InvalidInstruction.
package instruction

import (
	"encoding/binary"

	sdkerrors "cosmossdk.io/errors"

	"github.com/stableswap/ssamm/pool"
)

const ModuleName = "instruction"

// ErrInvalidInstruction signals an unrecognized tag or a payload too short
// for the tag it carries.
var ErrInvalidInstruction = sdkerrors.Register(ModuleName, 1, "undecodable operation tag or payload")

// Tag identifies which of the four operations a payload decodes to.
type Tag uint8

const (
	TagInitialize Tag = 0
	TagSwap       Tag = 1
	TagDeposit    Tag = 2
	TagWithdraw   Tag = 3
)

// InitializeArgs is tag 0's payload: u8 nonce, u64 amp, then the eight
// u64 fee fields in FeeConfig's declared order.
type InitializeArgs struct {
	Nonce uint8
	Amp   uint64
	Fees  pool.FeeConfig
}

// SwapArgs is tag 1's payload.
type SwapArgs struct {
	AmountIn         uint64
	MinimumAmountOut uint64
}

// DepositArgs is tag 2's payload.
type DepositArgs struct {
	AmountA   uint64
	AmountB   uint64
	MinShares uint64
}

// WithdrawArgs is tag 3's payload.
type WithdrawArgs struct {
	Shares uint64
	MinA   uint64
	MinB   uint64
}

// Instruction is the decoded operation: exactly one of the four Args
// fields is populated, matching Tag.
type Instruction struct {
	Tag Tag

	Initialize InitializeArgs
	Swap       SwapArgs
	Deposit    DepositArgs
	Withdraw   WithdrawArgs
}

const (
	u8Size  = 1
	u64Size = 8
)

// Decode parses data's leading tag byte and dispatches to the matching
// fixed-layout argument decoder.
func Decode(data []byte) (Instruction, error) {
	if len(data) < 1 {
		return Instruction{}, sdkerrors.Wrap(ErrInvalidInstruction, "empty payload")
	}
	tag := Tag(data[0])
	body := data[1:]

	switch tag {
	case TagInitialize:
		args, err := decodeInitialize(body)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Tag: tag, Initialize: args}, nil
	case TagSwap:
		args, err := decodeSwap(body)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Tag: tag, Swap: args}, nil
	case TagDeposit:
		args, err := decodeDeposit(body)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Tag: tag, Deposit: args}, nil
	case TagWithdraw:
		args, err := decodeWithdraw(body)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Tag: tag, Withdraw: args}, nil
	default:
		return Instruction{}, sdkerrors.Wrapf(ErrInvalidInstruction, "unknown tag %d", tag)
	}
}

func takeU8(body []byte, at int) (uint8, error) {
	if at+u8Size > len(body) {
		return 0, sdkerrors.Wrap(ErrInvalidInstruction, "truncated payload")
	}
	return body[at], nil
}

func takeU64(body []byte, at int) (uint64, error) {
	if at+u64Size > len(body) {
		return 0, sdkerrors.Wrap(ErrInvalidInstruction, "truncated payload")
	}
	return binary.LittleEndian.Uint64(body[at : at+u64Size]), nil
}

func decodeInitialize(body []byte) (InitializeArgs, error) {
	nonce, err := takeU8(body, 0)
	if err != nil {
		return InitializeArgs{}, err
	}
	at := u8Size

	amp, err := takeU64(body, at)
	if err != nil {
		return InitializeArgs{}, err
	}
	at += u64Size

	var fields [8]uint64
	for i := range fields {
		fields[i], err = takeU64(body, at)
		if err != nil {
			return InitializeArgs{}, err
		}
		at += u64Size
	}

	return InitializeArgs{
		Nonce: nonce,
		Amp:   amp,
		Fees: pool.FeeConfig{
			TradeFeeNum:         fields[0],
			TradeFeeDen:         fields[1],
			AdminTradeFeeNum:    fields[2],
			AdminTradeFeeDen:    fields[3],
			WithdrawFeeNum:      fields[4],
			WithdrawFeeDen:      fields[5],
			AdminWithdrawFeeNum: fields[6],
			AdminWithdrawFeeDen: fields[7],
		},
	}, nil
}

func decodeSwap(body []byte) (SwapArgs, error) {
	amountIn, err := takeU64(body, 0)
	if err != nil {
		return SwapArgs{}, err
	}
	minOut, err := takeU64(body, u64Size)
	if err != nil {
		return SwapArgs{}, err
	}
	return SwapArgs{AmountIn: amountIn, MinimumAmountOut: minOut}, nil
}

func decodeDeposit(body []byte) (DepositArgs, error) {
	amountA, err := takeU64(body, 0)
	if err != nil {
		return DepositArgs{}, err
	}
	amountB, err := takeU64(body, u64Size)
	if err != nil {
		return DepositArgs{}, err
	}
	minShares, err := takeU64(body, 2*u64Size)
	if err != nil {
		return DepositArgs{}, err
	}
	return DepositArgs{AmountA: amountA, AmountB: amountB, MinShares: minShares}, nil
}

func decodeWithdraw(body []byte) (WithdrawArgs, error) {
	shares, err := takeU64(body, 0)
	if err != nil {
		return WithdrawArgs{}, err
	}
	minA, err := takeU64(body, u64Size)
	if err != nil {
		return WithdrawArgs{}, err
	}
	minB, err := takeU64(body, 2*u64Size)
	if err != nil {
		return WithdrawArgs{}, err
	}
	return WithdrawArgs{Shares: shares, MinA: minA, MinB: minB}, nil
}
