package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stableswap/ssamm/pool"
)

const (
	demoReserveAID = "reserve_a"
	demoReserveBID = "reserve_b"
	demoLPMintID   = "lp_mint"
	demoUserA      = "user_a"
	demoUserB      = "user_b"
	demoUserLP     = "user_lp"
)

func addFeeFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64(FlagTradeFeeNum, 6, "trade fee numerator")
	cmd.Flags().Uint64(FlagTradeFeeDen, 100, "trade fee denominator")
	cmd.Flags().Uint64(FlagAdminTradeFeeNum, 0, "admin trade fee numerator")
	cmd.Flags().Uint64(FlagAdminTradeFeeDen, 1, "admin trade fee denominator")
	cmd.Flags().Uint64(FlagWithdrawFeeNum, 0, "withdraw fee numerator")
	cmd.Flags().Uint64(FlagWithdrawFeeDen, 1, "withdraw fee denominator")
	cmd.Flags().Uint64(FlagAdminWithdrawFeeNum, 0, "admin withdraw fee numerator")
	cmd.Flags().Uint64(FlagAdminWithdrawFeeDen, 1, "admin withdraw fee denominator")
}

func feeConfigFromFlags(cmd *cobra.Command) (pool.FeeConfig, error) {
	var fees pool.FeeConfig
	var err error
	get := func(name string) uint64 {
		if err != nil {
			return 0
		}
		var v uint64
		v, err = cmd.Flags().GetUint64(name)
		return v
	}
	fees.TradeFeeNum = get(FlagTradeFeeNum)
	fees.TradeFeeDen = get(FlagTradeFeeDen)
	fees.AdminTradeFeeNum = get(FlagAdminTradeFeeNum)
	fees.AdminTradeFeeDen = get(FlagAdminTradeFeeDen)
	fees.WithdrawFeeNum = get(FlagWithdrawFeeNum)
	fees.WithdrawFeeDen = get(FlagWithdrawFeeDen)
	fees.AdminWithdrawFeeNum = get(FlagAdminWithdrawFeeNum)
	fees.AdminWithdrawFeeDen = get(FlagAdminWithdrawFeeDen)
	return fees, err
}

// liveRecord builds a PoolRecord already marked Live with the demo's fixed
// account ids, for subcommands that operate against an existing pool
// (everything but initialize).
func liveRecord(amp uint64, authority string, fees pool.FeeConfig) pool.PoolRecord {
	return pool.PoolRecord{
		Initialized: true,
		Amp:         amp,
		PoolID:      "demo-pool",
		AuthorityID: authority,
		ReserveAID:  demoReserveAID,
		ReserveBID:  demoReserveBID,
		LPMintID:    demoLPMintID,
		Fees:        fees,
	}
}
