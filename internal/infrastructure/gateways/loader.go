package gateways

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"donation_interface/internal/domain/entities"
	"donation_interface/internal/infrastructure/config"
	"donation_interface/internal/usecase"

	"gopkg.in/yaml.v3"
)

//go:embed definitions/*.yaml
var definitionFS embed.FS

var ErrUnknownPlaceholder = errors.New("unknown definition placeholder")

// definitionFile is the declarative half of a gateway.
type definitionFile struct {
	Name              string                             `yaml:"name"`
	Identifier        string                             `yaml:"identifier"`
	GlobalPrefix      string                             `yaml:"global_prefix"`
	CommunicationType entities.CommunicationType         `yaml:"communication_type"`
	URL               string                             `yaml:"url"`
	ResultMarker      string                             `yaml:"result_marker"`
	AccountName       string                             `yaml:"account_name"`
	AccountFields     []string                           `yaml:"account_fields"`
	RequiredFields    []string                           `yaml:"required_fields"`
	StagedVars        []string                           `yaml:"staged_vars"`
	VarMap            map[string]string                  `yaml:"var_map"`
	DataConstraints   map[string]entities.DataConstraint `yaml:"data_constraints"`
	PostDataDefaults  map[string]string                  `yaml:"post_data_defaults"`
	ErrorMap          map[string]string                  `yaml:"error_map"`
	Transactions      map[string]transactionFile         `yaml:"transactions"`
	ReturnValueMap    []codeRangesFile                   `yaml:"return_value_map"`
}

type transactionFile struct {
	Request           fieldNodes                 `yaml:"request"`
	Values            map[string]string          `yaml:"values"`
	LoopForStatus     []entities.FinalStatus     `yaml:"loop_for_status"`
	CommunicationType entities.CommunicationType `yaml:"communication_type"`
	URL               string                     `yaml:"url"`
	FinalizeOnHandoff entities.FinalStatus       `yaml:"finalize_on_handoff"`
}

type codeRangesFile struct {
	Transaction string          `yaml:"transaction"`
	Key         string          `yaml:"key"`
	Ranges      []codeRangeFile `yaml:"ranges"`
}

type codeRangeFile struct {
	Status entities.FinalStatus `yaml:"status"`
	Lower  int                  `yaml:"lower"`
	Upper  *int                 `yaml:"upper"`
}

// fieldNodes decodes a request layout. A scalar is a field, a single-key
// mapping is a group holding the nodes listed under it.
type fieldNodes []entities.FieldNode

func (f *fieldNodes) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: request layout must be a list", n.Line)
	}
	nodes := make([]entities.FieldNode, 0, len(n.Content))
	for _, item := range n.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			nodes = append(nodes, entities.FieldNode{Name: item.Value})
		case yaml.MappingNode:
			for i := 0; i+1 < len(item.Content); i += 2 {
				var children fieldNodes
				if err := item.Content[i+1].Decode(&children); err != nil {
					return err
				}
				if len(children) == 0 {
					return fmt.Errorf("line %d: group %s is empty", item.Line, item.Content[i].Value)
				}
				nodes = append(nodes, entities.FieldNode{Name: item.Content[i].Value, Children: children})
			}
		default:
			return fmt.Errorf("line %d: unexpected request layout node", item.Line)
		}
	}
	*f = nodes
	return nil
}

func readDefinition(file string) (definitionFile, error) {
	raw, err := definitionFS.ReadFile("definitions/" + file)
	if err != nil {
		return definitionFile{}, err
	}
	var def definitionFile
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return definitionFile{}, fmt.Errorf("parse %s: %w", file, err)
	}
	return def, nil
}

// gatewayConfig merges the declarative file with the deployment settings.
func (f definitionFile) gatewayConfig(s config.GatewaySettings) (usecase.GatewayConfig, error) {
	cfg := usecase.GatewayConfig{
		Name:              f.Name,
		Identifier:        f.Identifier,
		GlobalPrefix:      f.GlobalPrefix,
		CommunicationType: f.CommunicationType,
		URL:               f.URL,
		ResultMarker:      f.ResultMarker,
		AccountName:       f.AccountName,
		AccountInfo:       map[string]string{},
		VarMap:            f.VarMap,
		DataConstraints:   f.DataConstraints,
		StagedVars:        f.StagedVars,
		PostDataDefaults:  f.PostDataDefaults,
		RequiredFields:    f.RequiredFields,
		ErrorMap:          f.ErrorMap,
		Salt:              s.Salt,
		RetryWindow:       s.RetrySeconds,
		PollInterval:      s.PollInterval,
		Transactions:      make(map[string]entities.TransactionDefinition, len(f.Transactions)),
		ReturnValues:      entities.NewReturnValueMap(),
	}
	if s.URL != "" {
		cfg.URL = s.URL
	}
	if s.AccountName != "" {
		cfg.AccountName = s.AccountName
	}
	for _, field := range f.AccountFields {
		cfg.AccountInfo[field] = s.AccountInfo[strings.ToLower(field)]
	}

	for name, t := range f.Transactions {
		values := make(map[string]string, len(t.Values))
		for k, v := range t.Values {
			resolved, err := resolvePlaceholder(v, s)
			if err != nil {
				return usecase.GatewayConfig{}, fmt.Errorf("%s %s.%s: %w", f.Identifier, name, k, err)
			}
			// An unset placeholder leaves a mapped field to the var map.
			if _, mapped := f.VarMap[k]; mapped && resolved == "" && strings.HasPrefix(v, "$") {
				continue
			}
			values[k] = resolved
		}
		cfg.Transactions[name] = entities.TransactionDefinition{
			Name:              name,
			Request:           t.Request,
			Values:            values,
			LoopForStatus:     t.LoopForStatus,
			CommunicationType: t.CommunicationType,
			URL:               t.URL,
			FinalizeOnHandoff: t.FinalizeOnHandoff,
		}
	}

	for _, rv := range f.ReturnValueMap {
		for _, r := range rv.Ranges {
			if err := cfg.ReturnValues.AddCodeRange(rv.Transaction, rv.Key, r.Status, r.Lower, r.Upper); err != nil {
				return usecase.GatewayConfig{}, fmt.Errorf("%s %s.%s: %w", f.Identifier, rv.Transaction, rv.Key, err)
			}
		}
	}
	return cfg, nil
}

// resolvePlaceholder expands $ReturnURL, $RecurringLength and
// $account.<key>. Other values are returned as written.
func resolvePlaceholder(v string, s config.GatewaySettings) (string, error) {
	if !strings.HasPrefix(v, "$") {
		return v, nil
	}
	name := v[1:]
	switch {
	case name == "ReturnURL":
		return s.ReturnURL, nil
	case name == "RecurringLength":
		return s.RecurringLength, nil
	case strings.HasPrefix(name, "account."):
		return s.AccountInfo[strings.ToLower(strings.TrimPrefix(name, "account."))], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownPlaceholder, v)
	}
}
