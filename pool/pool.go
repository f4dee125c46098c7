// Package pool implements the pool state machine: the four operations
// (initialize, swap, deposit, withdraw) that enforce preconditions, delegate
// numeric work to curve and convert, and emit transfer intents for the host
// to execute. The state machine itself holds no state — every call takes
// the current PoolRecord and Reserves and returns the next ones.
package pool

import (
	"cosmossdk.io/log"

	"github.com/stableswap/ssamm/convert"
	"github.com/stableswap/ssamm/curve"
	"github.com/stableswap/ssamm/safearith"

	sdkerrors "cosmossdk.io/errors"
)

// InitializeAccounts bundles the accounts and identity inputs an
// initialize operation validates. ExpectedAuthority is the identity the
// host has already derived for (pool id, nonce) by whatever
// platform-specific means it uses (address derivation is a host concern,
// per the scope of this package); Authority is the identity presented on
// the accounts the operation actually touches. The two are compared for
// equality — this package never performs the derivation itself.
type InitializeAccounts struct {
	PoolID            string
	ExpectedAuthority string
	Authority         string

	ReserveA Account
	ReserveB Account
	LPMint   Account

	AdminFeeA Account
	AdminFeeB Account

	LPDestinationID string
}

// Initialize transitions current (which must not already be initialized)
// to Live, minting the initial LP share supply (D0) to the caller's
// designated destination.
func Initialize(current PoolRecord, nonce uint8, amp uint64, fees FeeConfig, accounts InitializeAccounts, logger log.Logger, metrics Metrics) (PoolRecord, []TransferIntent, error) {
	logger = orNop(logger)
	metrics = orNoop(metrics)

	if current.Initialized {
		return fail(logger, metrics, "initialize", ErrAlreadyInUse, "")
	}
	if accounts.Authority != accounts.ExpectedAuthority {
		return fail(logger, metrics, "initialize", ErrInvalidProgramAddress, "")
	}
	if accounts.ReserveA.Kind != KindTokenAccount || !accounts.ReserveA.Initialized {
		return fail(logger, metrics, "initialize", ErrExpectedAccount, "reserve_a")
	}
	if accounts.ReserveB.Kind != KindTokenAccount || !accounts.ReserveB.Initialized {
		return fail(logger, metrics, "initialize", ErrExpectedAccount, "reserve_b")
	}
	if accounts.LPMint.Kind != KindMint || !accounts.LPMint.Initialized {
		return fail(logger, metrics, "initialize", ErrExpectedMint, "lp_mint")
	}
	if accounts.ReserveA.Owner != accounts.Authority || accounts.ReserveB.Owner != accounts.Authority {
		return fail(logger, metrics, "initialize", ErrInvalidOwner, "reserve owner")
	}
	if accounts.LPMint.Owner != "" && accounts.LPMint.Owner != accounts.Authority {
		return fail(logger, metrics, "initialize", ErrInvalidOwner, "lp_mint authority")
	}
	if accounts.ReserveA.Mint == accounts.ReserveB.Mint {
		return fail(logger, metrics, "initialize", ErrRepeatedMint, "")
	}
	if accounts.ReserveA.Amount == 0 || accounts.ReserveB.Amount == 0 {
		return fail(logger, metrics, "initialize", ErrEmptySupply, "")
	}
	if accounts.ReserveA.HasDelegate() || accounts.ReserveB.HasDelegate() {
		return fail(logger, metrics, "initialize", ErrInvalidDelegate, "")
	}
	if accounts.LPMint.Supply != 0 {
		return fail(logger, metrics, "initialize", ErrInvalidSupply, "")
	}
	if accounts.AdminFeeA.Mint != accounts.ReserveA.Mint || accounts.AdminFeeB.Mint != accounts.ReserveB.Mint {
		return fail(logger, metrics, "initialize", ErrInvalidAdmin, "")
	}
	if amp < 1 {
		return fail(logger, metrics, "initialize", ErrCalculationFailure, "amp must be >= 1")
	}
	if !fees.Validate() {
		return fail(logger, metrics, "initialize", ErrCalculationFailure, "invalid fee configuration")
	}

	sw, err := curve.New(amp)
	if err != nil {
		return fail(logger, metrics, "initialize", ErrCalculationFailure, err.Error())
	}
	d0, steps, err := sw.ComputeDSteps(safearith.Widen(accounts.ReserveA.Amount), safearith.Widen(accounts.ReserveB.Amount))
	if err != nil {
		return fail(logger, metrics, "initialize", ErrCalculationFailure, err.Error())
	}
	metrics.ObserveIteration("initialize", steps)

	sharesOut, err := safearith.Narrow(d0)
	if err != nil {
		return fail(logger, metrics, "initialize", ErrConversionFailure, err.Error())
	}

	record := PoolRecord{
		Initialized: true,
		Nonce:       nonce,
		Amp:         amp,
		PoolID:      accounts.PoolID,
		AuthorityID: accounts.Authority,
		ReserveAID:  accounts.ReserveA.ID,
		ReserveBID:  accounts.ReserveB.ID,
		MintAID:     accounts.ReserveA.Mint,
		MintBID:     accounts.ReserveB.Mint,
		LPMintID:    accounts.LPMint.ID,
		AdminFeeAID: accounts.AdminFeeA.ID,
		AdminFeeBID: accounts.AdminFeeB.ID,
		Fees:        fees,
	}

	intents := []TransferIntent{
		MintTo(accounts.LPMint.ID, accounts.LPDestinationID, sharesOut, accounts.Authority),
	}

	logger.Info("initialize", "amp", amp, "shares_minted", sharesOut)
	metrics.ObserveOperation("initialize", true)
	return record, intents, nil
}

// SwapAccounts bundles the accounts a swap validates against the record.
type SwapAccounts struct {
	Authority string

	SourceReserveID string
	DestReserveID   string

	UserSourceID string
	UserDestID   string
}

// Swap exchanges amountIn of the source reserve's asset for the
// destination reserve's asset, failing ExceededSlippage if the computed
// output is below minOut.
func Swap(record PoolRecord, reserves Reserves, amountIn, minOut uint64, accounts SwapAccounts, logger log.Logger, metrics Metrics) (Reserves, []TransferIntent, error) {
	logger = orNop(logger)
	metrics = orNoop(metrics)

	if !record.Initialized {
		return failReserves(logger, metrics, "swap", ErrNotInitialized, "")
	}
	if accounts.Authority != record.authority() {
		return failReserves(logger, metrics, "swap", ErrInvalidProgramAddress, "")
	}
	sourceIsA, ok := record.sideOf(accounts.SourceReserveID)
	if !ok {
		return failReserves(logger, metrics, "swap", ErrIncorrectSwapAccount, "source")
	}
	destIsA, ok := record.sideOf(accounts.DestReserveID)
	if !ok {
		return failReserves(logger, metrics, "swap", ErrIncorrectSwapAccount, "destination")
	}
	if accounts.SourceReserveID == accounts.DestReserveID {
		return failReserves(logger, metrics, "swap", ErrInvalidInput, "")
	}
	if sourceIsA == destIsA {
		return failReserves(logger, metrics, "swap", ErrIncorrectSwapAccount, "source and destination are the same reserve")
	}

	sw, err := curve.New(record.Amp)
	if err != nil {
		return failReserves(logger, metrics, "swap", ErrCalculationFailure, err.Error())
	}

	var sourceAmt, destAmt uint64
	if sourceIsA {
		sourceAmt, destAmt = reserves.XA, reserves.XB
	} else {
		sourceAmt, destAmt = reserves.XB, reserves.XA
	}

	result, err := sw.SwapTo(
		safearith.Widen(amountIn),
		safearith.Widen(sourceAmt),
		safearith.Widen(destAmt),
		safearith.Widen(record.Fees.TradeFeeNum),
		safearith.Widen(record.Fees.TradeFeeDen),
	)
	if err != nil {
		return failReserves(logger, metrics, "swap", ErrCalculationFailure, err.Error())
	}
	metrics.ObserveIteration("swap", result.Steps)

	out, err := safearith.Narrow(result.Out)
	if err != nil {
		return failReserves(logger, metrics, "swap", ErrConversionFailure, err.Error())
	}
	if out < minOut {
		return failReserves(logger, metrics, "swap", ErrExceededSlippage, "")
	}

	newSourceAmt, err := safearith.Narrow(result.NewX)
	if err != nil {
		return failReserves(logger, metrics, "swap", ErrConversionFailure, err.Error())
	}
	newDestAmt, err := safearith.Narrow(result.NewY)
	if err != nil {
		return failReserves(logger, metrics, "swap", ErrConversionFailure, err.Error())
	}

	next := reserves
	if sourceIsA {
		next.XA, next.XB = newSourceAmt, newDestAmt
	} else {
		next.XB, next.XA = newSourceAmt, newDestAmt
	}

	intents := []TransferIntent{
		Transfer(accounts.UserSourceID, accounts.SourceReserveID, amountIn, record.authority()),
		Transfer(accounts.DestReserveID, accounts.UserDestID, out, record.authority()),
	}

	logger.Info("swap", "amount_in", amountIn, "out", out)
	metrics.ObserveOperation("swap", true)
	return next, intents, nil
}

// DepositAccounts bundles the accounts a deposit validates against the
// record.
type DepositAccounts struct {
	Authority string

	ReserveAID string
	ReserveBID string
	LPMintID   string

	UserAID  string
	UserBID  string
	UserLPID string
}

// DepositResult exposes the computed-but-unrouted admin fee split alongside
// the shares minted; see spec.md §9's Known Open Questions — admin fee
// routing is computed but never emitted as a transfer intent.
type DepositResult struct {
	SharesOut   uint64
	AdminFeeDue [2]uint64
}

// Deposit adds amountA/amountB of the two underlyings pro rata, charging
// each side an imbalance fee on how far its new balance lies from the ideal
// pro-rata balance (above or below it), and mints shares proportional to
// how much the invariant D grew.
func Deposit(record PoolRecord, reserves Reserves, amountA, amountB, minShares uint64, accounts DepositAccounts, logger log.Logger, metrics Metrics) (Reserves, DepositResult, []TransferIntent, error) {
	logger = orNop(logger)
	metrics = orNoop(metrics)

	if !record.Initialized {
		return failDeposit(logger, metrics, "deposit", ErrNotInitialized, "")
	}
	if accounts.Authority != record.authority() {
		return failDeposit(logger, metrics, "deposit", ErrInvalidProgramAddress, "")
	}
	if accounts.ReserveAID != record.ReserveAID || accounts.ReserveBID != record.ReserveBID {
		return failDeposit(logger, metrics, "deposit", ErrIncorrectSwapAccount, "")
	}
	if accounts.LPMintID != record.LPMintID {
		return failDeposit(logger, metrics, "deposit", ErrIncorrectPoolMint, "")
	}

	sw, err := curve.New(record.Amp)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}

	xa, xb := safearith.Widen(reserves.XA), safearith.Widen(reserves.XB)

	d0, steps0, err := sw.ComputeDSteps(xa, xb)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}

	newA, err := xa.Add(safearith.Widen(amountA))
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}
	newB, err := xb.Add(safearith.Widen(amountB))
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}

	d1, steps1, err := sw.ComputeDSteps(newA, newB)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}
	if !d1.GT(d0) {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, "D1 <= D0")
	}

	feeNum := safearith.Widen(record.Fees.TradeFeeNum)
	feeDen := safearith.Widen(record.Fees.TradeFeeDen)

	adjustedA, feeA, err := imbalanceAdjust(newA, xa, d1, d0, feeNum, feeDen)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}
	adjustedB, feeB, err := imbalanceAdjust(newB, xb, d1, d0, feeNum, feeDen)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}

	d2, steps2, err := sw.ComputeDSteps(adjustedA, adjustedB)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}
	metrics.ObserveIteration("deposit", steps0+steps1+steps2)

	dDiff, err := d2.Sub(d0)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}
	sharesOutWide, err := safearith.MulDiv(safearith.Widen(reserves.Supply), dDiff, d0)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}
	sharesOut, err := safearith.Narrow(sharesOutWide)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrConversionFailure, err.Error())
	}
	if sharesOut < minShares {
		return failDeposit(logger, metrics, "deposit", ErrExceededSlippage, "")
	}

	newXA, err := safearith.Narrow(adjustedA)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrConversionFailure, err.Error())
	}
	newXB, err := safearith.Narrow(adjustedB)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrConversionFailure, err.Error())
	}
	adminNum := safearith.Widen(record.Fees.AdminTradeFeeNum)
	adminDen := safearith.Widen(record.Fees.AdminTradeFeeDen)
	adminWideA, err := safearith.MulDiv(feeA, adminNum, adminDen)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}
	adminWideB, err := safearith.MulDiv(feeB, adminNum, adminDen)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrCalculationFailure, err.Error())
	}
	adminFeeA, err := safearith.Narrow(adminWideA)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrConversionFailure, err.Error())
	}
	adminFeeB, err := safearith.Narrow(adminWideB)
	if err != nil {
		return failDeposit(logger, metrics, "deposit", ErrConversionFailure, err.Error())
	}

	next := Reserves{XA: newXA, XB: newXB, Supply: reserves.Supply + sharesOut}

	intents := []TransferIntent{
		Transfer(accounts.UserAID, accounts.ReserveAID, amountA, record.authority()),
		Transfer(accounts.UserBID, accounts.ReserveBID, amountB, record.authority()),
		MintTo(accounts.LPMintID, accounts.UserLPID, sharesOut, record.authority()),
	}

	logger.Info("deposit", "amount_a", amountA, "amount_b", amountB, "shares_out", sharesOut)
	metrics.ObserveOperation("deposit", true)
	return next, DepositResult{SharesOut: sharesOut, AdminFeeDue: [2]uint64{adminFeeA, adminFeeB}}, intents, nil
}

// imbalanceAdjust computes the fee charged on one side's deposit relative
// to the ideal pro-rata amount, and returns the fee-adjusted new balance
// alongside the fee itself.
func imbalanceAdjust(newI, oldI, d1, d0, feeNum, feeDen safearith.Uint128) (adjusted, fee safearith.Uint128, err error) {
	ideal, err := safearith.MulDiv(d1, oldI, d0)
	if err != nil {
		return safearith.Uint128{}, safearith.Uint128{}, err
	}
	diff := safearith.AbsDiff(newI, ideal)
	fee, err = safearith.MulDiv(feeNum, diff, feeDen)
	if err != nil {
		return safearith.Uint128{}, safearith.Uint128{}, err
	}
	adjusted, err = newI.Sub(fee)
	if err != nil {
		return safearith.Uint128{}, safearith.Uint128{}, err
	}
	return adjusted, fee, nil
}

// WithdrawAccounts bundles the accounts a withdraw validates against the
// record.
type WithdrawAccounts struct {
	Authority string

	ReserveAID string
	ReserveBID string
	LPMintID   string

	UserAID  string
	UserBID  string
	UserLPID string
}

// Withdraw burns shares LP tokens for a pro-rata share of both reserves.
// There is no curve fee on this path — any withdraw-fee configuration on
// FeeConfig is carried but unused, matching the program this core models.
func Withdraw(record PoolRecord, reserves Reserves, shares, minA, minB uint64, accounts WithdrawAccounts, logger log.Logger, metrics Metrics) (Reserves, []TransferIntent, error) {
	logger = orNop(logger)
	metrics = orNoop(metrics)

	if !record.Initialized {
		return failReserves(logger, metrics, "withdraw", ErrNotInitialized, "")
	}
	if accounts.Authority != record.authority() {
		return failReserves(logger, metrics, "withdraw", ErrInvalidProgramAddress, "")
	}
	if accounts.ReserveAID != record.ReserveAID || accounts.ReserveBID != record.ReserveBID {
		return failReserves(logger, metrics, "withdraw", ErrIncorrectSwapAccount, "")
	}
	if accounts.LPMintID != record.LPMintID {
		return failReserves(logger, metrics, "withdraw", ErrIncorrectPoolMint, "")
	}
	if reserves.Supply == 0 {
		return failReserves(logger, metrics, "withdraw", ErrEmptyPool, "")
	}

	if shares == 0 {
		logger.Info("withdraw", "shares", 0, "a_out", 0, "b_out", 0)
		metrics.ObserveOperation("withdraw", true)
		return reserves, []TransferIntent{
			Transfer(accounts.ReserveAID, accounts.UserAID, 0, record.authority()),
			Transfer(accounts.ReserveBID, accounts.UserBID, 0, record.authority()),
			Burn(accounts.UserLPID, accounts.LPMintID, 0, record.authority()),
		}, nil
	}

	conv, err := convert.New(safearith.Widen(reserves.Supply), safearith.Widen(reserves.XA), safearith.Widen(reserves.XB))
	if err != nil {
		return failReserves(logger, metrics, "withdraw", ErrCalculationFailure, err.Error())
	}

	aOutWide, err := conv.TokenARate(safearith.Widen(shares))
	if err != nil {
		return failReserves(logger, metrics, "withdraw", ErrCalculationFailure, err.Error())
	}
	bOutWide, err := conv.TokenBRate(safearith.Widen(shares))
	if err != nil {
		return failReserves(logger, metrics, "withdraw", ErrCalculationFailure, err.Error())
	}

	aOut, err := safearith.Narrow(aOutWide)
	if err != nil {
		return failReserves(logger, metrics, "withdraw", ErrConversionFailure, err.Error())
	}
	bOut, err := safearith.Narrow(bOutWide)
	if err != nil {
		return failReserves(logger, metrics, "withdraw", ErrConversionFailure, err.Error())
	}

	if aOut < minA || bOut < minB {
		return failReserves(logger, metrics, "withdraw", ErrExceededSlippage, "")
	}

	next := Reserves{
		XA:     reserves.XA - aOut,
		XB:     reserves.XB - bOut,
		Supply: reserves.Supply - shares,
	}

	intents := []TransferIntent{
		Transfer(accounts.ReserveAID, accounts.UserAID, aOut, record.authority()),
		Transfer(accounts.ReserveBID, accounts.UserBID, bOut, record.authority()),
		Burn(accounts.UserLPID, accounts.LPMintID, shares, record.authority()),
	}

	logger.Info("withdraw", "shares", shares, "a_out", aOut, "b_out", bOut)
	metrics.ObserveOperation("withdraw", true)
	return next, intents, nil
}

// authority is the pool's derived authority identity, established once at
// Initialize (see InitializeAccounts.ExpectedAuthority) and persisted on
// the record. Later operations compare their caller-supplied Authority
// against this value; the derivation itself stays a host concern.
func (r PoolRecord) authority() string { return r.AuthorityID }

// sideOf reports which reserve (A=true, B=false) the given id names, or
// false, false if the id is not one of the pool's two reserves.
func (r PoolRecord) sideOf(id string) (isA bool, ok bool) {
	switch id {
	case r.ReserveAID:
		return true, true
	case r.ReserveBID:
		return false, true
	default:
		return false, false
	}
}

func orNop(l log.Logger) log.Logger {
	if l == nil {
		return log.NewNopLogger()
	}
	return l
}

func orNoop(m Metrics) Metrics {
	if m == nil {
		return NoopMetrics
	}
	return m
}

func fail(logger log.Logger, metrics Metrics, op string, sentinel error, detail string) (PoolRecord, []TransferIntent, error) {
	logger.Error(op, "error", sentinel, "detail", detail)
	metrics.ObserveOperation(op, false)
	if detail == "" {
		return PoolRecord{}, nil, sentinel
	}
	return PoolRecord{}, nil, sdkerrors.Wrap(sentinel, detail)
}

func failReserves(logger log.Logger, metrics Metrics, op string, sentinel error, detail string) (Reserves, []TransferIntent, error) {
	logger.Error(op, "error", sentinel, "detail", detail)
	metrics.ObserveOperation(op, false)
	if detail == "" {
		return Reserves{}, nil, sentinel
	}
	return Reserves{}, nil, sdkerrors.Wrap(sentinel, detail)
}

func failDeposit(logger log.Logger, metrics Metrics, op string, sentinel error, detail string) (Reserves, DepositResult, []TransferIntent, error) {
	logger.Error(op, "error", sentinel, "detail", detail)
	metrics.ObserveOperation(op, false)
	if detail == "" {
		return Reserves{}, DepositResult{}, nil, sentinel
	}
	return Reserves{}, DepositResult{}, nil, sdkerrors.Wrap(sentinel, detail)
}
