package main

import (
	"fmt"

	"donation_interface/internal/infrastructure/config"
	"donation_interface/internal/infrastructure/gateways"

	"github.com/spf13/cobra"
)

func loadRegistry(cmd *cobra.Command) (*gateways.Registry, error) {
	path, _ := cmd.Flags().GetString("config")
	settings, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return gateways.NewRegistry(settings)
}

func loadGateway(cmd *cobra.Command) (gateways.Gateway, error) {
	reg, err := loadRegistry(cmd)
	if err != nil {
		return gateways.Gateway{}, err
	}
	id, _ := cmd.Flags().GetString("gateway")
	return reg.Get(id)
}
