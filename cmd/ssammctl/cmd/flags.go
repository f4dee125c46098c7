package cmd

// Flag constants for ssammctl's operation subcommands.
const (
	FlagAmp     = "amp"
	FlagNonce   = "nonce"
	FlagPoolID  = "pool-id"
	FlagAuthority = "authority"

	FlagTradeFeeNum         = "trade-fee-num"
	FlagTradeFeeDen         = "trade-fee-den"
	FlagAdminTradeFeeNum    = "admin-trade-fee-num"
	FlagAdminTradeFeeDen    = "admin-trade-fee-den"
	FlagWithdrawFeeNum      = "withdraw-fee-num"
	FlagWithdrawFeeDen      = "withdraw-fee-den"
	FlagAdminWithdrawFeeNum = "admin-withdraw-fee-num"
	FlagAdminWithdrawFeeDen = "admin-withdraw-fee-den"

	FlagReserveA = "reserve-a"
	FlagReserveB = "reserve-b"
	FlagSupply   = "supply"

	FlagAmountA   = "amount-a"
	FlagAmountB   = "amount-b"
	FlagAmountIn  = "amount-in"
	FlagMinOut    = "min-out"
	FlagMinShares = "min-shares"
	FlagMinA      = "min-a"
	FlagMinB      = "min-b"
	FlagShares    = "shares"
	FlagSource    = "source"
)
