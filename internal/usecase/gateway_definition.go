package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"donation_interface/internal/domain/entities"
)

const (
	ErrorCodeDefault       = "0"
	ErrorCodeValidation    = "internal-0000"
	ErrorCodeConfiguration = "internal-0001"
	ErrorCodeCommunication = "internal-0002"
	ErrorCodeTokenMismatch = "token-mismatch"
)

var defaultErrorMap = map[string]string{
	ErrorCodeDefault:       "We were unable to process your donation. Please try again or use another payment method.",
	ErrorCodeValidation:    "Your donation could not be processed as submitted. Please review your information and try again.",
	ErrorCodeConfiguration: "There was a problem processing your donation. Please try again later.",
	ErrorCodeCommunication: "We could not reach the payment processor. Please try again later.",
	ErrorCodeTokenMismatch: "Your session has expired. Please reload the form and try again.",
}

var (
	ErrUnknownTransaction    = errors.New("unknown transaction")
	ErrUnresolvedField       = errors.New("unresolved request field")
	ErrInvalidDefinition     = errors.New("invalid gateway definition")
	ErrFinalStatusAlreadySet = errors.New("final status already set for this attempt")
)

// ConfigurationError is a malformed gateway definition or a misuse of the
// engine. It never reaches callers of DoTransaction.
type ConfigurationError struct {
	Gateway     string
	Transaction string
	Field       string
	Err         error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("gateway configuration error")
	if e.Gateway != "" {
		b.WriteString(" gateway=" + e.Gateway)
	}
	if e.Transaction != "" {
		b.WriteString(" transaction=" + e.Transaction)
	}
	if e.Field != "" {
		b.WriteString(" field=" + e.Field)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// StagingMode tells a staging function which direction data is flowing.
type StagingMode int

const (
	StagingRequest StagingMode = iota
	StagingResponse
)

// StagingFunc computes one staged field.
type StagingFunc func(s *StagedData, mode StagingMode)

// TransactionHook runs before or after a transaction exchange. A returned
// error is treated as a configuration error.
type TransactionHook func(ctx context.Context, a *GatewayAdapter) error

// ResponseDecision is what a gateway concluded from one parsed response.
type ResponseDecision struct {
	// Outcome is empty when the response codes did not classify.
	Outcome      entities.FinalStatus
	GatewayTxnID string
	TxnMessage   string
	Action       entities.ValidationAction
	// ErrCode and RetryVars are set together when the gateway asks for the
	// whole transaction to be repeated with the named fields regenerated.
	ErrCode   string
	RetryVars []string
}

// ResponseHandler extracts gateway-specific meaning from a parsed response.
type ResponseHandler interface {
	Status(resp ParsedResponse) bool
	Errors(resp ParsedResponse) map[string]string
	Data(resp ParsedResponse) map[string]string
	Process(txn string, result entities.TransactionResult, codes CodeClassifier) ResponseDecision
}

// CodeClassifier looks response codes up in the gateway's range table.
type CodeClassifier interface {
	FindCodeAction(txn, key, code string) (entities.FinalStatus, bool)
}

// GatewayConfig is the input used to build a GatewayDefinition.
type GatewayConfig struct {
	Name              string
	Identifier        string
	GlobalPrefix      string
	CommunicationType entities.CommunicationType
	URL               string
	ResultMarker      string
	AccountName       string
	AccountInfo       map[string]string
	VarMap            map[string]string
	DataConstraints   map[string]entities.DataConstraint
	StagedVars        []string
	PostDataDefaults  map[string]string
	RequiredFields    []string
	ErrorMap          map[string]string
	Salt              string
	RetryWindow       time.Duration
	PollInterval      time.Duration
	Transactions      map[string]entities.TransactionDefinition
	ReturnValues      *entities.ReturnValueMap
	Responses         ResponseHandler
	StagingFuncs      map[string]StagingFunc
	PreProcess        map[string]TransactionHook
	PostProcess       map[string]TransactionHook
}

// GatewayDefinition is the frozen description of one gateway. It is safe to
// share between requests.
type GatewayDefinition struct {
	name              string
	identifier        string
	globalPrefix      string
	communicationType entities.CommunicationType
	url               string
	resultMarker      string
	accountName       string
	accountInfo       map[string]string
	varMap            map[string]string
	dataConstraints   map[string]entities.DataConstraint
	stagedVars        []string
	postDataDefaults  map[string]string
	requiredFields    []string
	errorMap          map[string]string
	salt              string
	retryWindow       time.Duration
	pollInterval      time.Duration
	transactions      map[string]entities.TransactionDefinition
	returnValues      *entities.ReturnValueMap
	responses         ResponseHandler
	stagingFuncs      map[string]StagingFunc
	preProcess        map[string]TransactionHook
	postProcess       map[string]TransactionHook
}

// NewGatewayDefinition validates cfg and freezes it. Every request field of
// every transaction must be resolvable by name.
func NewGatewayDefinition(cfg GatewayConfig) (*GatewayDefinition, error) {
	if cfg.Identifier == "" {
		return nil, &ConfigurationError{Err: fmt.Errorf("%w: missing identifier", ErrInvalidDefinition)}
	}
	if !cfg.CommunicationType.Valid() {
		return nil, &ConfigurationError{Gateway: cfg.Identifier, Err: fmt.Errorf("%w: communication type %q", ErrInvalidDefinition, cfg.CommunicationType)}
	}
	if len(cfg.Transactions) == 0 {
		return nil, &ConfigurationError{Gateway: cfg.Identifier, Err: fmt.Errorf("%w: no transactions", ErrInvalidDefinition)}
	}

	d := &GatewayDefinition{
		name:              cfg.Name,
		identifier:        cfg.Identifier,
		globalPrefix:      cfg.GlobalPrefix,
		communicationType: cfg.CommunicationType,
		url:               cfg.URL,
		resultMarker:      cfg.ResultMarker,
		accountName:       cfg.AccountName,
		accountInfo:       copyStrings(cfg.AccountInfo),
		varMap:            copyStrings(cfg.VarMap),
		dataConstraints:   map[string]entities.DataConstraint{},
		stagedVars:        append([]string(nil), cfg.StagedVars...),
		postDataDefaults:  copyStrings(cfg.PostDataDefaults),
		requiredFields:    append([]string(nil), cfg.RequiredFields...),
		errorMap:          copyStrings(defaultErrorMap),
		salt:              cfg.Salt,
		retryWindow:       cfg.RetryWindow,
		pollInterval:      cfg.PollInterval,
		transactions:      make(map[string]entities.TransactionDefinition, len(cfg.Transactions)),
		returnValues:      cfg.ReturnValues,
		responses:         cfg.Responses,
		stagingFuncs:      make(map[string]StagingFunc, len(cfg.StagingFuncs)),
		preProcess:        make(map[string]TransactionHook, len(cfg.PreProcess)),
		postProcess:       make(map[string]TransactionHook, len(cfg.PostProcess)),
	}
	if d.resultMarker == "" {
		d.resultMarker = "RESULT"
	}
	if d.returnValues == nil {
		d.returnValues = entities.NewReturnValueMap()
	}
	if d.responses == nil {
		d.responses = noResponses{}
	}
	for k, v := range cfg.DataConstraints {
		d.dataConstraints[k] = v
	}
	for k, v := range cfg.ErrorMap {
		d.errorMap[k] = v
	}
	for k, fn := range cfg.StagingFuncs {
		d.stagingFuncs[strings.ToLower(k)] = fn
	}
	for k, fn := range cfg.PreProcess {
		d.preProcess[strings.ToLower(k)] = fn
	}
	for k, fn := range cfg.PostProcess {
		d.postProcess[strings.ToLower(k)] = fn
	}

	for name, txn := range cfg.Transactions {
		if txn.CommunicationType != "" && !txn.CommunicationType.Valid() {
			return nil, &ConfigurationError{Gateway: d.identifier, Transaction: name, Err: fmt.Errorf("%w: communication type %q", ErrInvalidDefinition, txn.CommunicationType)}
		}
		for _, s := range txn.LoopForStatus {
			if !s.Valid() {
				return nil, &ConfigurationError{Gateway: d.identifier, Transaction: name, Err: fmt.Errorf("%w: %q", entities.ErrInvalidFinalStatus, s)}
			}
		}
		txn.Name = name
		txn.Values = copyStrings(txn.Values)
		for _, field := range entities.Leaves(txn.Request) {
			if !d.resolvable(txn, field) {
				return nil, &ConfigurationError{Gateway: d.identifier, Transaction: name, Field: field, Err: ErrUnresolvedField}
			}
		}
		d.transactions[name] = txn
	}
	return d, nil
}

func (d *GatewayDefinition) resolvable(txn entities.TransactionDefinition, field string) bool {
	if _, ok := txn.Values[field]; ok {
		return true
	}
	if _, ok := d.accountInfo[field]; ok {
		return true
	}
	_, ok := d.varMap[field]
	return ok
}

func (d *GatewayDefinition) Name() string                                  { return d.name }
func (d *GatewayDefinition) Identifier() string                            { return d.identifier }
func (d *GatewayDefinition) GlobalPrefix() string                          { return d.globalPrefix }
func (d *GatewayDefinition) CommunicationType() entities.CommunicationType { return d.communicationType }
func (d *GatewayDefinition) URL() string                                   { return d.url }
func (d *GatewayDefinition) AccountName() string                           { return d.accountName }
func (d *GatewayDefinition) RequiredFields() []string                      { return append([]string(nil), d.requiredFields...) }
func (d *GatewayDefinition) ResultMarker() string                          { return d.resultMarker }

func (d *GatewayDefinition) Transaction(name string) (entities.TransactionDefinition, bool) {
	t, ok := d.transactions[name]
	return t, ok
}

func (d *GatewayDefinition) TransactionNames() []string {
	names := make([]string, 0, len(d.transactions))
	for n := range d.transactions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CommunicationTypeFor returns the transaction override or the gateway default.
func (d *GatewayDefinition) CommunicationTypeFor(txn entities.TransactionDefinition) entities.CommunicationType {
	if txn.CommunicationType != "" {
		return txn.CommunicationType
	}
	return d.communicationType
}

func (d *GatewayDefinition) URLFor(txn entities.TransactionDefinition) string {
	if txn.URL != "" {
		return txn.URL
	}
	return d.url
}

// ErrorMessage returns the display-safe message of a code, falling back to
// the default code.
func (d *GatewayDefinition) ErrorMessage(code string) string {
	if msg, ok := d.errorMap[code]; ok {
		return msg
	}
	return d.errorMap[ErrorCodeDefault]
}

func (d *GatewayDefinition) FindCodeAction(txn, key, code string) (entities.FinalStatus, bool) {
	return d.returnValues.FindCodeAction(txn, key, code)
}

func (d *GatewayDefinition) stagingFunc(field string) StagingFunc {
	return d.stagingFuncs[strings.ToLower(field)]
}

func (d *GatewayDefinition) preProcessHook(txn string) TransactionHook {
	return d.preProcess[strings.ToLower(txn)]
}

func (d *GatewayDefinition) postProcessHook(txn string) TransactionHook {
	return d.postProcess[strings.ToLower(txn)]
}

// noResponses serves redirect-only gateways, which never parse a response.
type noResponses struct{}

func (noResponses) Status(ParsedResponse) bool               { return false }
func (noResponses) Errors(ParsedResponse) map[string]string { return map[string]string{} }
func (noResponses) Data(ParsedResponse) map[string]string   { return map[string]string{} }
func (noResponses) Process(string, entities.TransactionResult, CodeClassifier) ResponseDecision {
	return ResponseDecision{}
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
