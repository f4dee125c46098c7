package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/stableswap/ssamm/pool"
)

func newInitializeCmd(logger log.Logger, metrics *promMetrics) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initialize",
		Short: "Initialize a new pool and mint its initial LP share supply",
		RunE: func(cmd *cobra.Command, _ []string) error {
			amp, err := cmd.Flags().GetUint64(FlagAmp)
			if err != nil {
				return err
			}
			nonce, err := cmd.Flags().GetUint8(FlagNonce)
			if err != nil {
				return err
			}
			poolID, err := cmd.Flags().GetString(FlagPoolID)
			if err != nil {
				return err
			}
			authority, err := cmd.Flags().GetString(FlagAuthority)
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
			fees, err := feeConfigFromFlags(cmd)
			if err != nil {
				return err
			}

			accounts := pool.InitializeAccounts{
				PoolID:            poolID,
				ExpectedAuthority: authority,
				Authority:         authority,
				ReserveA: pool.Account{
					ID: demoReserveAID, Owner: authority, Mint: "mint_a",
					Amount: amountA, Initialized: true, Kind: pool.KindTokenAccount,
				},
				ReserveB: pool.Account{
					ID: demoReserveBID, Owner: authority, Mint: "mint_b",
					Amount: amountB, Initialized: true, Kind: pool.KindTokenAccount,
				},
				LPMint: pool.Account{
					ID: demoLPMintID, Owner: authority, Initialized: true, Kind: pool.KindMint,
				},
				AdminFeeA:       pool.Account{ID: "admin_fee_a", Mint: "mint_a"},
				AdminFeeB:       pool.Account{ID: "admin_fee_b", Mint: "mint_b"},
				LPDestinationID: demoUserLP,
			}

			record, intents, err := pool.Initialize(pool.PoolRecord{}, nonce, amp, fees, accounts, logger, metrics)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pool_id=%s authority=%s amp=%d\n", record.PoolID, record.AuthorityID, record.Amp)
			printIntents(cmd, intents)
			return nil
		},
	}

	cmd.Flags().Uint64(FlagAmp, 85, "amplification coefficient")
	cmd.Flags().Uint8(FlagNonce, 0, "authority derivation nonce")
	cmd.Flags().String(FlagPoolID, "demo-pool", "pool identifier")
	cmd.Flags().String(FlagAuthority, "demo-authority", "pool authority identifier")
	cmd.Flags().Uint64(FlagAmountA, 0, "initial reserve A amount")
	cmd.Flags().Uint64(FlagAmountB, 0, "initial reserve B amount")
	addFeeFlags(cmd)

	return cmd
}
