package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stableswap/ssamm/pool"
)

func printIntents(cmd *cobra.Command, intents []pool.TransferIntent) {
	for _, in := range intents {
		switch in.Kind {
		case pool.IntentTransfer:
			fmt.Fprintf(cmd.OutOrStdout(), "transfer src=%s dst=%s amount=%d authority=%s\n", in.Src, in.Dst, in.Amount, in.Authority)
		case pool.IntentMintTo:
			fmt.Fprintf(cmd.OutOrStdout(), "mint_to mint=%s dst=%s amount=%d authority=%s\n", in.Mint, in.Dst, in.Amount, in.Authority)
		case pool.IntentBurn:
			fmt.Fprintf(cmd.OutOrStdout(), "burn src=%s mint=%s amount=%d authority=%s\n", in.Src, in.Mint, in.Amount, in.Authority)
		}
	}
}
