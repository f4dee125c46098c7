package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/stableswap/ssamm/pool"
)

func newWithdrawCmd(logger log.Logger, metrics *promMetrics) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Burn shares LP tokens for a pro-rata share of both reserves",
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
			shares, err := cmd.Flags().GetUint64(FlagShares)
			if err != nil {
				return err
			}
			minA, err := cmd.Flags().GetUint64(FlagMinA)
			if err != nil {
				return err
			}
			minB, err := cmd.Flags().GetUint64(FlagMinB)
			if err != nil {
				return err
			}
			fees, err := feeConfigFromFlags(cmd)
			if err != nil {
				return err
			}

			record := liveRecord(amp, authority, fees)
			reserves := pool.Reserves{XA: reserveA, XB: reserveB, Supply: supply}
			accounts := pool.WithdrawAccounts{
				Authority: authority, ReserveAID: demoReserveAID, ReserveBID: demoReserveBID, LPMintID: demoLPMintID,
				UserAID: demoUserA, UserBID: demoUserB, UserLPID: demoUserLP,
			}

			next, intents, err := pool.Withdraw(record, reserves, shares, minA, minB, accounts, logger, metrics)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "reserve_a=%d reserve_b=%d supply=%d\n", next.XA, next.XB, next.Supply)
			printIntents(cmd, intents)
			return nil
		},
	}

	cmd.Flags().Uint64(FlagAmp, 85, "amplification coefficient")
	cmd.Flags().String(FlagAuthority, "demo-authority", "pool authority identifier")
	cmd.Flags().Uint64(FlagReserveA, 0, "current reserve A amount")
	cmd.Flags().Uint64(FlagReserveB, 0, "current reserve B amount")
	cmd.Flags().Uint64(FlagSupply, 0, "current LP share supply")
	cmd.Flags().Uint64(FlagShares, 0, "LP shares to burn")
	cmd.Flags().Uint64(FlagMinA, 0, "minimum acceptable A output")
	cmd.Flags().Uint64(FlagMinB, 0, "minimum acceptable B output")
	addFeeFlags(cmd)

	return cmd
}
