package main

import (
	"fmt"
	"os"

	"donation_interface/internal/adapter/persistence/repository"
	"donation_interface/internal/domain/entities"
	"donation_interface/internal/usecase"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Print the wire payload of a transaction for a donation",
		Long: `Stage a donation read from a yaml file of field: value pairs and print
the request the gateway would receive. Nothing is sent.

With --format the transaction layout is printed instead, mapped fields
shown as @field.`,
		Args: cobra.NoArgs,
		RunE: runBuild,
	}
	cmd.Flags().StringP("gateway", "g", "", "Gateway identifier")
	cmd.Flags().StringP("transaction", "t", "", "Transaction name")
	cmd.Flags().StringP("data", "d", "", "Donation fields (yaml)")
	cmd.Flags().Bool("format", false, "Print the transaction layout instead of a payload")
	_ = cmd.MarkFlagRequired("gateway")
	_ = cmd.MarkFlagRequired("transaction")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	g, err := loadGateway(cmd)
	if err != nil {
		return err
	}
	txn, _ := cmd.Flags().GetString("transaction")
	dataPath, _ := cmd.Flags().GetString("data")
	formatOnly, _ := cmd.Flags().GetBool("format")

	fields, err := readDonationFields(dataPath)
	if err != nil {
		return err
	}

	donation := entities.NewDonation(fields, entities.DonationOptions{Gateway: g.Definition.Identifier()})
	adapter := usecase.NewGatewayAdapter(g.Definition, donation, usecase.AdapterOptions{
		Retry: usecase.NewRetryContext(repository.NewMemorySessionStore(), "donation-cli"),
	})

	var payload string
	if formatOnly {
		payload, err = adapter.TransactionFormat(txn)
	} else {
		payload, err = adapter.BuildRequest(txn)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), payload)

	if !formatOnly {
		for field, msg := range adapter.Revalidate() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", field, msg)
		}
	}
	return nil
}

func readDonationFields(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fields := map[string]string{}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return fields, nil
}
