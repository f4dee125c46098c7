// Package cmd implements ssammctl, a demo command line for the core. The
// decode subcommand decodes a wire-format payload and prints its fields;
// the operation subcommands run the pool state machine against an
// in-memory pool built from flags and print the resulting state and
// transfer intents.
package cmd

import (
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagMetricsAddr = "metrics-addr"
	envPrefix       = "SSAMM"
)

// NewRootCmd builds the ssammctl command tree.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	logger := log.NewLogger(os.Stdout)

	root := &cobra.Command{
		Use:                        "ssammctl",
		Short:                      "Drive the StableSwap AMM core from the command line",
		SuggestionsMinimumDistance: 2,
		SilenceUsage:               true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v.SetEnvPrefix(envPrefix)
			v.AutomaticEnv()
			return v.BindPFlags(cmd.Flags())
		},
	}

	root.PersistentFlags().String(flagMetricsAddr, "", "address to serve Prometheus /metrics on (empty disables it)")

	metrics := newPromMetrics()

	root.AddCommand(
		newDecodeCmd(),
		newInitializeCmd(logger, metrics),
		newSwapCmd(logger, metrics),
		newDepositCmd(logger, metrics),
		newWithdrawCmd(logger, metrics),
	)

	root.PersistentPreRunE = chainPreRun(root.PersistentPreRunE, func(cmd *cobra.Command, _ []string) error {
		addr, err := cmd.Flags().GetString(flagMetricsAddr)
		if err != nil {
			return err
		}
		if addr != "" {
			startMetricsServer(addr)
		}
		return nil
	})

	return root
}

func chainPreRun(first, second func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := first(cmd, args); err != nil {
			return err
		}
		return second(cmd, args)
	}
}
