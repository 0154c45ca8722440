package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func gatewaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gateways",
		Short: "List the registered gateways and their transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range reg.Identifiers() {
				g, err := reg.Get(id)
				if err != nil {
					return err
				}
				d := g.Definition
				fmt.Fprintf(out, "%-14s %-10s %s\n", d.Identifier(), d.CommunicationType(), d.Name())
				fmt.Fprintf(out, "  transactions: %s\n", strings.Join(d.TransactionNames(), ", "))
				if url := d.URL(); url != "" {
					fmt.Fprintf(out, "  url:          %s\n", url)
				}
			}
			return nil
		},
	}
}
