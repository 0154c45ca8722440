package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "donation-cli",
		Short:         "Inspect the donation gateways without talking to them",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", os.Getenv("DONATION_CONFIG_FILE"), "Gateway settings file (yaml)")

	rootCmd.AddCommand(gatewaysCmd())
	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(classifyCmd())
	return rootCmd
}
