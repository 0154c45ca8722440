package usecase

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"donation_interface/internal/domain/entities"
)

const (
	xmlDeclaration = `<?xml version="1.0"?>` + "\n"
	xmlRootElement = "XML"
)

// resolveField returns the value a gateway field should carry. The lookup
// order is hardcoded transaction value, account value, then the mapped
// staged field with its default. wantFieldNameOnly returns "@<field>" for
// mapped fields, which is how request formats are documented.
func (a *GatewayAdapter) resolveField(name string, wantFieldNameOnly bool) (string, error) {
	if v, ok := a.txn.Value(name); ok {
		return v, nil
	}
	if v, ok := a.def.accountInfo[name]; ok {
		return v, nil
	}
	if field, ok := a.def.varMap[name]; ok {
		if wantFieldNameOnly {
			return "@" + field, nil
		}
		if a.staged != nil {
			if v, ok := a.staged.Get(field); ok {
				return v, nil
			}
		}
		return a.def.postDataDefaults[field], nil
	}
	return "", &ConfigurationError{
		Gateway:     a.def.identifier,
		Transaction: a.txn.Name,
		Field:       name,
		Err:         ErrUnresolvedField,
	}
}

// buildStructured renders the layout as an XML document under a single XML
// root. Empty leaves are left out.
func (a *GatewayAdapter) buildStructured(nodes []entities.FieldNode, wantFieldNameOnly bool) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	enc := xml.NewEncoder(&buf)

	root := xml.StartElement{Name: xml.Name{Local: xmlRootElement}}
	if err := enc.EncodeToken(root); err != nil {
		return "", err
	}
	if err := a.writeNodes(enc, nodes, wantFieldNameOnly); err != nil {
		return "", err
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	buf.WriteString("\n")
	return buf.String(), nil
}

func (a *GatewayAdapter) writeNodes(enc *xml.Encoder, nodes []entities.FieldNode, wantFieldNameOnly bool) error {
	for _, n := range nodes {
		el := xml.StartElement{Name: xml.Name{Local: n.Name}}
		if n.IsGroup() {
			if err := enc.EncodeToken(el); err != nil {
				return err
			}
			if err := a.writeNodes(enc, n.Children, wantFieldNameOnly); err != nil {
				return err
			}
			if err := enc.EncodeToken(el.End()); err != nil {
				return err
			}
			continue
		}

		v, err := a.resolveField(n.Name, wantFieldNameOnly)
		if err != nil {
			return err
		}
		if v == "" {
			continue
		}
		if err := enc.EncodeElement(v, el); err != nil {
			return err
		}
	}
	return nil
}

// buildFlat renders name[len]=value pairs joined by &. len is the byte
// length of value.
func (a *GatewayAdapter) buildFlat(nodes []entities.FieldNode, wantFieldNameOnly bool) (string, error) {
	var pairs []string
	for _, name := range entities.Leaves(nodes) {
		v, err := a.resolveField(name, wantFieldNameOnly)
		if err != nil {
			return "", err
		}
		if v == "" {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s[%d]=%s", name, len(v), v))
	}
	return strings.Join(pairs, "&"), nil
}

func (a *GatewayAdapter) buildRedirectURL(base string, nodes []entities.FieldNode) (string, error) {
	q := url.Values{}
	for _, name := range entities.Leaves(nodes) {
		v, err := a.resolveField(name, false)
		if err != nil {
			return "", err
		}
		if v == "" {
			continue
		}
		q.Set(name, v)
	}
	if len(q) == 0 {
		return base, nil
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q.Encode(), nil
}

// buildPayload serializes the current transaction for its communication type.
func (a *GatewayAdapter) buildPayload(wantFieldNameOnly bool) (string, error) {
	switch ct := a.def.CommunicationTypeFor(a.txn); ct {
	case entities.CommunicationXML:
		return a.buildStructured(a.txn.Request, wantFieldNameOnly)
	case entities.CommunicationNameValue:
		return a.buildFlat(a.txn.Request, wantFieldNameOnly)
	case entities.CommunicationRedirect:
		return a.buildRedirectURL(a.def.URLFor(a.txn), a.txn.Request)
	default:
		return "", &ConfigurationError{Gateway: a.def.identifier, Transaction: a.txn.Name, Err: fmt.Errorf("%w: communication type %q", ErrInvalidDefinition, ct)}
	}
}

// BuildRequest stages the donation for txn and returns the wire payload
// without sending it.
func (a *GatewayAdapter) BuildRequest(txn string) (string, error) {
	if err := a.setCurrentTransaction(txn); err != nil {
		return "", err
	}
	a.StageData(StagingRequest)
	return a.buildPayload(false)
}

// TransactionFormat renders the layout of txn with mapped fields shown as
// @<field> tokens.
func (a *GatewayAdapter) TransactionFormat(txn string) (string, error) {
	if err := a.setCurrentTransaction(txn); err != nil {
		return "", err
	}
	if a.def.CommunicationTypeFor(a.txn) == entities.CommunicationRedirect {
		return a.buildFlat(a.txn.Request, true)
	}
	return a.buildPayload(true)
}
