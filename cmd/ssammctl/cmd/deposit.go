package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/stableswap/ssamm/pool"
)

func newDepositCmd(logger log.Logger, metrics *promMetrics) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit amount-a/amount-b of the two underlyings, minting LP shares",
		RunE: func(cmd *cobra.Command, _ []string) error {
			amp, err := cmd.Flags().GetUint64(FlagAmp)
			if err != nil {
				return err
			}
			authority, err := cmd.Flags().GetString(FlagAuthority)
			if err != nil {
				return err
			}
			reserveA, err := cmd.Flags().GetUint64(FlagReserveA)
			if err != nil {
				return err
			}
			reserveB, err := cmd.Flags().GetUint64(FlagReserveB)
			if err != nil {
				return err
			}
			supply, err := cmd.Flags().GetUint64(FlagSupply)
			if err != nil {
				return err
			}
			amountA, err := cmd.Flags().GetUint64(FlagAmountA)
			if err != nil {
				return err
			}
			amountB, err := cmd.Flags().GetUint64(FlagAmountB)
			if err != nil {
				return err
			}
			minShares, err := cmd.Flags().GetUint64(FlagMinShares)
			if err != nil {
				return err
			}
			fees, err := feeConfigFromFlags(cmd)
			if err != nil {
				return err
			}

			record := liveRecord(amp, authority, fees)
			reserves := pool.Reserves{XA: reserveA, XB: reserveB, Supply: supply}
			accounts := pool.DepositAccounts{
				Authority: authority, ReserveAID: demoReserveAID, ReserveBID: demoReserveBID, LPMintID: demoLPMintID,
				UserAID: demoUserA, UserBID: demoUserB, UserLPID: demoUserLP,
			}

			next, result, intents, err := pool.Deposit(record, reserves, amountA, amountB, minShares, accounts, logger, metrics)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "reserve_a=%d reserve_b=%d supply=%d shares_out=%d admin_fee_a=%d admin_fee_b=%d\n",
				next.XA, next.XB, next.Supply, result.SharesOut, result.AdminFeeDue[0], result.AdminFeeDue[1])
			printIntents(cmd, intents)
			return nil
		},
	}

	cmd.Flags().Uint64(FlagAmp, 85, "amplification coefficient")
	cmd.Flags().String(FlagAuthority, "demo-authority", "pool authority identifier")
	cmd.Flags().Uint64(FlagReserveA, 0, "current reserve A amount")
	cmd.Flags().Uint64(FlagReserveB, 0, "current reserve B amount")
	cmd.Flags().Uint64(FlagSupply, 0, "current LP share supply")
	cmd.Flags().Uint64(FlagAmountA, 0, "amount of A to deposit")
	cmd.Flags().Uint64(FlagAmountB, 0, "amount of B to deposit")
	cmd.Flags().Uint64(FlagMinShares, 0, "minimum acceptable shares minted, or the deposit fails ExceededSlippage")
	addFeeFlags(cmd)

	return cmd
}
