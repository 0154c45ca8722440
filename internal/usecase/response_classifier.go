package usecase

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"donation_interface/internal/domain/entities"
)

var ErrUnparseableResponse = errors.New("unparseable gateway response")

// XMLNode is a generic element tree of a gateway response.
type XMLNode struct {
	Name     string
	Text     string
	Children []*XMLNode
}

// Find returns the first descendant (or n itself) named name.
func (n *XMLNode) Find(name string) *XMLNode {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant named name in document order.
func (n *XMLNode) FindAll(name string) []*XMLNode {
	if n == nil {
		return nil
	}
	var out []*XMLNode
	if n.Name == name {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, c.FindAll(name)...)
	}
	return out
}

// ChildText maps the leaf children of n to their text.
func (n *XMLNode) ChildText() map[string]string {
	out := map[string]string{}
	if n == nil {
		return out
	}
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			out[c.Name] = c.Text
		}
	}
	return out
}

// ParsedResponse is the normalized form of a gateway response.
type ParsedResponse struct {
	// Unparsed is the body after header stripping.
	Unparsed string
	// Fields holds flat pairs, or every XML leaf keyed by element name
	// with the first occurrence winning.
	Fields map[string]string
	Tree   *XMLNode
}

// ParseResponse strips transport noise before the payload and parses it.
func ParseResponse(raw string, ct entities.CommunicationType, resultMarker string) (ParsedResponse, error) {
	switch ct {
	case entities.CommunicationXML:
		return parseXMLResponse(raw)
	case entities.CommunicationNameValue:
		return parseFlatResponse(raw, resultMarker)
	default:
		return ParsedResponse{}, fmt.Errorf("%w: no parser for %q", ErrUnparseableResponse, ct)
	}
}

func parseXMLResponse(raw string) (ParsedResponse, error) {
	start := strings.Index(raw, "<?xml")
	if start < 0 {
		start = strings.Index(raw, "<")
	}
	if start < 0 {
		return ParsedResponse{}, fmt.Errorf("%w: no markup found", ErrUnparseableResponse)
	}
	body := raw[start:]

	tree, err := parseXMLTree(body)
	if err != nil {
		return ParsedResponse{}, fmt.Errorf("%w: %v", ErrUnparseableResponse, err)
	}
	fields := map[string]string{}
	flattenLeaves(tree, fields)
	return ParsedResponse{Unparsed: body, Fields: fields, Tree: tree}, nil
}

func parseXMLTree(body string) (*XMLNode, error) {
	dec := xml.NewDecoder(strings.NewReader(body))
	dec.Strict = true

	var root *XMLNode
	var stack []*XMLNode
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &XMLNode{Name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			n := stack[len(stack)-1]
			n.Text = strings.TrimSpace(n.Text)
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("empty document")
	}
	return root, nil
}

func flattenLeaves(n *XMLNode, out map[string]string) {
	if len(n.Children) == 0 {
		if _, ok := out[n.Name]; !ok {
			out[n.Name] = n.Text
		}
		return
	}
	for _, c := range n.Children {
		flattenLeaves(c, out)
	}
}

func parseFlatResponse(raw, marker string) (ParsedResponse, error) {
	start := strings.Index(raw, marker)
	if start < 0 {
		return ParsedResponse{}, fmt.Errorf("%w: marker %q not found", ErrUnparseableResponse, marker)
	}
	body := strings.TrimSpace(raw[start:])

	fields := map[string]string{}
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 {
			fields[kv[0]] = kv[1]
		} else {
			fields[kv[0]] = ""
		}
	}
	return ParsedResponse{Unparsed: body, Fields: fields}, nil
}
