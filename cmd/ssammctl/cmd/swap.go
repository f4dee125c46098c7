package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/stableswap/ssamm/pool"
)

func newSwapCmd(logger log.Logger, metrics *promMetrics) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Swap amount-in of the source reserve's asset for the other",
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
			amountIn, err := cmd.Flags().GetUint64(FlagAmountIn)
			if err != nil {
				return err
			}
			minOut, err := cmd.Flags().GetUint64(FlagMinOut)
			if err != nil {
				return err
			}
			source, err := cmd.Flags().GetString(FlagSource)
			if err != nil {
				return err
			}
			fees, err := feeConfigFromFlags(cmd)
			if err != nil {
				return err
			}

			record := liveRecord(amp, authority, fees)
			reserves := pool.Reserves{XA: reserveA, XB: reserveB, Supply: supply}

			var accounts pool.SwapAccounts
			switch source {
			case "a":
				accounts = pool.SwapAccounts{
					Authority: authority, SourceReserveID: demoReserveAID, DestReserveID: demoReserveBID,
					UserSourceID: demoUserA, UserDestID: demoUserB,
				}
			case "b":
				accounts = pool.SwapAccounts{
					Authority: authority, SourceReserveID: demoReserveBID, DestReserveID: demoReserveAID,
					UserSourceID: demoUserB, UserDestID: demoUserA,
				}
			default:
				return fmt.Errorf("--%s must be \"a\" or \"b\", got %q", FlagSource, source)
			}

			next, intents, err := pool.Swap(record, reserves, amountIn, minOut, accounts, logger, metrics)
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
	cmd.Flags().Uint64(FlagAmountIn, 0, "amount of the source asset to swap in")
	cmd.Flags().Uint64(FlagMinOut, 0, "minimum acceptable output, or the swap fails ExceededSlippage")
	cmd.Flags().String(FlagSource, "a", "which reserve (\"a\" or \"b\") is the swap's source")
	addFeeFlags(cmd)

	return cmd
}
