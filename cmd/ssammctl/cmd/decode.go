package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stableswap/ssamm/instruction"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [hex-payload]",
		Short: "Decode a wire-format operation payload and print its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("payload is not valid hex: %w", err)
			}
			instr, err := instruction.Decode(raw)
			if err != nil {
				return err
			}

			switch instr.Tag {
			case instruction.TagInitialize:
				fmt.Fprintf(cmd.OutOrStdout(), "initialize nonce=%d amp=%d fees=%+v\n",
					instr.Initialize.Nonce, instr.Initialize.Amp, instr.Initialize.Fees)
			case instruction.TagSwap:
				fmt.Fprintf(cmd.OutOrStdout(), "swap amount_in=%d minimum_amount_out=%d\n",
					instr.Swap.AmountIn, instr.Swap.MinimumAmountOut)
			case instruction.TagDeposit:
				fmt.Fprintf(cmd.OutOrStdout(), "deposit amount_a=%d amount_b=%d min_shares=%d\n",
					instr.Deposit.AmountA, instr.Deposit.AmountB, instr.Deposit.MinShares)
			case instruction.TagWithdraw:
				fmt.Fprintf(cmd.OutOrStdout(), "withdraw shares=%d min_a=%d min_b=%d\n",
					instr.Withdraw.Shares, instr.Withdraw.MinA, instr.Withdraw.MinB)
			}
			return nil
		},
	}
}
