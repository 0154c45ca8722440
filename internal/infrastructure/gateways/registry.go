package gateways

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"donation_interface/internal/domain/entities"
	"donation_interface/internal/infrastructure/config"
	"donation_interface/internal/usecase"
	"donation_interface/internal/usecase/interfaces"
)

var ErrGatewayNotFound = errors.New("gateway not found")

// gatewayCode is the part of a gateway that cannot be declared in YAML.
type gatewayCode struct {
	responses usecase.ResponseHandler
	staging   map[string]usecase.StagingFunc
	pre       map[string]usecase.TransactionHook
	post      map[string]usecase.TransactionHook
}

var builtins = []struct {
	file string
	code func(config.GatewaySettings) gatewayCode
}{
	{file: "globalcollect.yaml", code: globalCollectCode},
	{file: "payflowpro.yaml", code: payflowProCode},
	{file: "paypal.yaml", code: paypalCode},
}

// SettingsSource resolves the settings of a gateway by its global prefix.
type SettingsSource interface {
	GatewaySettings(prefix string) config.GatewaySettings
}

// Gateway is a registered gateway with the settings it was built from.
type Gateway struct {
	Definition *usecase.GatewayDefinition
	Settings   config.GatewaySettings
}

type Registry struct {
	gateways map[string]Gateway
}

// NewRegistry builds every bundled gateway. A definition that fails to
// build fails the whole registry.
func NewRegistry(src SettingsSource) (*Registry, error) {
	r := &Registry{gateways: make(map[string]Gateway, len(builtins))}
	for _, b := range builtins {
		file, err := readDefinition(b.file)
		if err != nil {
			return nil, err
		}
		settings := src.GatewaySettings(file.GlobalPrefix)
		cfg, err := file.gatewayConfig(settings)
		if err != nil {
			return nil, err
		}
		code := b.code(settings)
		cfg.Responses = code.responses
		cfg.StagingFuncs = code.staging
		cfg.PreProcess = code.pre
		cfg.PostProcess = code.post

		def, err := usecase.NewGatewayDefinition(cfg)
		if err != nil {
			return nil, fmt.Errorf("build gateway %s: %w", file.Identifier, err)
		}
		r.gateways[def.Identifier()] = Gateway{Definition: def, Settings: settings}
		log.Printf("[gateway][registry] registered gateway=%s transactions=%v", def.Identifier(), def.TransactionNames())
	}
	return r, nil
}

func (r *Registry) Get(identifier string) (Gateway, error) {
	g, ok := r.gateways[identifier]
	if !ok {
		return Gateway{}, fmt.Errorf("%w: %s", ErrGatewayNotFound, identifier)
	}
	return g, nil
}

func (r *Registry) Identifiers() []string {
	ids := make([]string, 0, len(r.gateways))
	for id := range r.gateways {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TransportFactory builds the transport of one gateway.
type TransportFactory func(g Gateway) interfaces.IGatewayTransport

// Runtimes wires every gateway for the donation use case.
func (r *Registry) Runtimes(newTransport TransportFactory, counters interfaces.ICounterStore) map[string]usecase.GatewayRuntime {
	out := make(map[string]usecase.GatewayRuntime, len(r.gateways))
	for id, g := range r.gateways {
		out[id] = usecase.GatewayRuntime{
			Definition:   g.Definition,
			Transport:    newTransport(g),
			Filters:      filterFactory(g.Settings, counters),
			QueueEnabled: g.Settings.EnableQueue,
			ResultPage:   resultPages(g.Settings),
		}
	}
	return out
}

// resultPages returns nil when the gateway has neither page configured.
func resultPages(s config.GatewaySettings) func(bool, string) string {
	if s.ThankYouPage == "" && s.FailPage == "" {
		return nil
	}
	return func(success bool, language string) string {
		if success {
			return config.PageURL(s.ThankYouPage, language)
		}
		return config.PageURL(s.FailPage, language)
	}
}

// filterFactory returns nil when no filter is enabled.
func filterFactory(s config.GatewaySettings, counters interfaces.ICounterStore) func() *usecase.CustomFilters {
	var filters []usecase.CustomFilter
	if s.IPVelocity.Enabled && counters != nil {
		v := s.IPVelocity
		filters = append(filters, usecase.NewIPVelocityFilter(counters, v.Threshold, v.FailScore, v.Window))
	}
	if s.SessionVelocity.Enabled {
		v := s.SessionVelocity
		filters = append(filters, usecase.NewSessionVelocityFilter(v.Threshold, v.FailScore, v.Window))
	}
	if len(filters) == 0 {
		return nil
	}
	ranges := actionRanges(s.RiskScoreRanges)
	return func() *usecase.CustomFilters {
		return usecase.NewCustomFilters(ranges, filters...)
	}
}

// actionRanges turns configured score intervals into filter ranges, ordered
// by lower bound. Unknown action names are skipped.
func actionRanges(cfg map[string][2]int) []usecase.ActionRange {
	var ranges []usecase.ActionRange
	for name, bounds := range cfg {
		action, err := entities.ParseValidationAction(name)
		if err != nil {
			log.Printf("[gateway][registry] skipping risk score range action=%s err=%v", name, err)
			continue
		}
		ranges = append(ranges, usecase.ActionRange{Action: action, Lower: bounds[0], Upper: bounds[1]})
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Lower < ranges[j].Lower })
	return ranges
}
