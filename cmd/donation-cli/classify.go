package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"donation_interface/internal/usecase"

	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a gateway response code or a saved response body",
		Args:  cobra.NoArgs,
		RunE:  runClassify,
	}
	cmd.Flags().StringP("gateway", "g", "", "Gateway identifier")
	cmd.Flags().StringP("transaction", "t", "", "Transaction name")
	cmd.Flags().StringP("key", "k", "", "Response key the code belongs to")
	cmd.Flags().String("code", "", "Response code to classify")
	cmd.Flags().StringP("response", "r", "", "Saved response body to parse")
	_ = cmd.MarkFlagRequired("gateway")
	_ = cmd.MarkFlagRequired("transaction")
	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	g, err := loadGateway(cmd)
	if err != nil {
		return err
	}
	txnName, _ := cmd.Flags().GetString("transaction")
	key, _ := cmd.Flags().GetString("key")
	code, _ := cmd.Flags().GetString("code")
	responsePath, _ := cmd.Flags().GetString("response")

	def := g.Definition
	txn, ok := def.Transaction(txnName)
	if !ok {
		return fmt.Errorf("%w: %s", usecase.ErrUnknownTransaction, txnName)
	}
	out := cmd.OutOrStdout()

	if responsePath != "" {
		raw, err := os.ReadFile(responsePath)
		if err != nil {
			return err
		}
		parsed, err := usecase.ParseResponse(string(raw), def.CommunicationTypeFor(txn), def.ResultMarker())
		if err != nil {
			return err
		}
		names := make([]string, 0, len(parsed.Fields))
		for name := range parsed.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "%s=%s\n", name, parsed.Fields[name])
		}
		if key != "" && code == "" {
			code = parsed.Fields[key]
		}
	}

	if key == "" {
		return nil
	}
	if code == "" {
		return errors.New("no code to classify")
	}
	status, found := def.FindCodeAction(txnName, key, code)
	if !found {
		fmt.Fprintf(out, "%s %s=%s: unclassified\n", txnName, key, code)
		return nil
	}
	fmt.Fprintf(out, "%s %s=%s: %s\n", txnName, key, code, status)
	return nil
}
