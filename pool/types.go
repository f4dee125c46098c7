package pool

// FeeConfig holds the four rational fee rates that parameterize a pool,
// each expressed as a numerator/denominator pair in [0,1].
//
// The deposit imbalance fee (see Deposit) reuses TradeFeeNum/TradeFeeDen
// rather than a dedicated rate; this is preserved from the program this
// core is modeled on, not a shortcut taken here.
type FeeConfig struct {
	TradeFeeNum, TradeFeeDen               uint64
	AdminTradeFeeNum, AdminTradeFeeDen       uint64
	WithdrawFeeNum, WithdrawFeeDen           uint64
	AdminWithdrawFeeNum, AdminWithdrawFeeDen uint64
}

func validFraction(num, den uint64) bool {
	return den >= 1 && num <= den
}

// Validate checks the PoolRecord invariant that every denominator is >= 1
// and every numerator does not exceed its denominator.
func (f FeeConfig) Validate() bool {
	return validFraction(f.TradeFeeNum, f.TradeFeeDen) &&
		validFraction(f.AdminTradeFeeNum, f.AdminTradeFeeDen) &&
		validFraction(f.WithdrawFeeNum, f.WithdrawFeeDen) &&
		validFraction(f.AdminWithdrawFeeNum, f.AdminWithdrawFeeDen)
}

// PoolRecord is the persisted descriptor of a pool. It carries no balances
// of its own — those live in Reserves, which the host reads and writes
// separately — and is append-only except for the Initialized transition.
// PoolRecord's wire layout (spec.md §6) carries seven opaque identifiers
// plus the two mint identifiers — two more than §3's prose names
// individually (reserve_a_id, reserve_b_id, lp_mint_id, admin_fee_a_id,
// admin_fee_b_id). PoolID and AuthorityID fill that gap: the pool's own
// self-referential id and the authority identity the host derived from
// (pool id, nonce) at Initialize time, both opaque to this package and
// persisted purely so later operations can compare against them (actual
// derivation stays a host concern, per spec.md §1).
type PoolRecord struct {
	Initialized bool
	Nonce       uint8
	Amp         uint64

	PoolID      string
	AuthorityID string

	ReserveAID string
	ReserveBID string
	MintAID    string
	MintBID    string
	LPMintID   string

	AdminFeeAID string
	AdminFeeBID string

	Fees FeeConfig
}

// Reserves holds the two underlying balances and the LP-share supply. They
// live outside the PoolRecord and are supplied fresh on every operation.
type Reserves struct {
	XA     uint64
	XB     uint64
	Supply uint64
}

// AccountKind discriminates the two shapes of account the host may pass:
// ordinary token accounts (holding a balance of one mint) and mints
// (tracking a supply and, optionally, a mint authority).
type AccountKind int

const (
	KindTokenAccount AccountKind = iota
	KindMint
)

// Account is the host's homogeneous account record, distinguished only by
// position in the operation's argument list and by the runtime checks this
// package performs against its fields. The core never inspects any
// host-internal field beyond these.
type Account struct {
	ID          string
	Owner       string
	Mint        string
	Amount      uint64
	Delegate    string // empty means no delegate
	Supply      uint64 // meaningful only when Kind == KindMint
	Initialized bool
	Kind        AccountKind
}

func (a Account) HasDelegate() bool { return a.Delegate != "" }

// IntentKind discriminates the three transfer-intent shapes the core emits.
type IntentKind int

const (
	IntentTransfer IntentKind = iota
	IntentMintTo
	IntentBurn
)

// TransferIntent is one step of the fixed-order plan a successful operation
// hands back to the host. The host executes the whole list or none of it.
type TransferIntent struct {
	Kind      IntentKind
	Src       string
	Dst       string
	Mint      string
	Amount    uint64
	Authority string
}

// Transfer moves amount from src to dst, both ordinary token accounts.
func Transfer(src, dst string, amount uint64, authority string) TransferIntent {
	return TransferIntent{Kind: IntentTransfer, Src: src, Dst: dst, Amount: amount, Authority: authority}
}

// MintTo mints amount of mint to dst.
func MintTo(mint, dst string, amount uint64, authority string) TransferIntent {
	return TransferIntent{Kind: IntentMintTo, Mint: mint, Dst: dst, Amount: amount, Authority: authority}
}

// Burn burns amount of mint from src.
func Burn(src, mint string, amount uint64, authority string) TransferIntent {
	return TransferIntent{Kind: IntentBurn, Src: src, Mint: mint, Amount: amount, Authority: authority}
}
